package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPrompt(t *testing.T) {
	tests := []struct {
		name    string
		message string
		hint    string
		want    string
	}{
		{"no hint", "Port:", "", "Port:"},
		{"no hint keeps trailing space", "Port: ", "", "Port: "},
		{"string default", "Port:", DefaultHint("5432"), "Port: [default: 5432] "},
		{"message ends in space", "Port: ", DefaultHint("5432"), "Port: [default: 5432] "},
		{"typed default", "Timeout:", HintDefaultSet, "Timeout: [default set] "},
		{"empty message", "", DefaultHint("x"), "[default: x] "},
		{"bracket suppresses hint", "Port [5432]:", DefaultHint("5432"), "Port [5432]: "},
		{"default marker suppresses hint", "Port (default 5432):", DefaultHint("5432"), "Port (default 5432): "},
		{"unicode message", "Größe:", DefaultHint("1"), "Größe: [default: 1] "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPrompt(tt.message, tt.hint))
		})
	}
}

func TestHintSuppressed(t *testing.T) {
	assert.True(t, HintSuppressed("Pick [a/b]"))
	assert.True(t, HintSuppressed("Port (default 80)"))
	assert.False(t, HintSuppressed("Port:"))
	assert.False(t, HintSuppressed("Port (optional):"))
}
