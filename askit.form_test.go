package askit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFormYAML = `
name: service
description: Service settings
fields:
  - name: host
    message: "Host:"
  - name: port
    message: "Port:"
    type: uint
    default: "8080"
    retries: 1
    validate: "min=1,max=65535"
    validation_message: "Port must be 1..65535"
  - name: debug
    message: "Debug?"
    type: bool
    default: "false"
  - name: ratio
    message: "Ratio:"
    type: float
  - name: offset
    message: "Offset:"
    type: int
  - name: timeout
    message: "Timeout:"
    type: duration
    default: "5s"
  - name: mode
    message: "Mode:"
    choices: [fast, safe]
    retries: 1
`

func mustParseForm(t *testing.T, doc string) *Form {
	t.Helper()
	form, err := ParseForm([]byte(doc))
	require.NoError(t, err)
	return form
}

func TestParseForm(t *testing.T) {
	form := mustParseForm(t, testFormYAML)

	assert.Equal(t, "service", form.Name)
	assert.Equal(t, "Service settings", form.Description)
	require.Len(t, form.Fields, 7)

	host := form.Fields[0]
	assert.Equal(t, FieldTypeString, host.FieldType())
	assert.Nil(t, host.Default)
	assert.Nil(t, host.Trim)

	port := form.Fields[1]
	assert.Equal(t, FieldTypeUint, port.FieldType())
	require.NotNil(t, port.Default)
	assert.Equal(t, "8080", *port.Default)
	assert.Equal(t, 1, port.Retries)
	assert.Equal(t, []string{"fast", "safe"}, form.Fields[6].Choices)
}

func TestParseForm_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"malformed yaml", "name: [", ErrMsgFormInvalid},
		{"unknown key", "name: x\nfields:\n  - name: a\n    colour: red\n", ErrMsgFormInvalid},
		{"no fields", "name: x\nfields: []\n", ErrMsgFormEmpty},
		{"empty field name", "name: x\nfields:\n  - message: hi\n", ErrMsgFormFieldNameEmpty},
		{"duplicate field", "name: x\nfields:\n  - name: a\n  - name: a\n", ErrMsgFormFieldDuplicate},
		{"unknown type", "name: x\nfields:\n  - name: a\n    type: complex\n", ErrMsgFormFieldType},
		{"bad default", "name: x\nfields:\n  - name: a\n    type: int\n    default: \"abc\"\n", ErrMsgFormFieldDefault},
		{"bad choice", "name: x\nfields:\n  - name: a\n    type: bool\n    choices: [\"yes\"]\n", ErrMsgFormFieldChoice},
		{"bad rule", "name: x\nfields:\n  - name: a\n    validate: \"not_a_rule\"\n", ErrMsgFormFieldRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForm([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var ce *cuserr.CustomError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestParseForm_FieldMetadata(t *testing.T) {
	_, err := ParseForm([]byte("name: db\nfields:\n  - name: port\n    type: uint\n    default: \"-1\"\n"))

	var ce *cuserr.CustomError
	require.ErrorAs(t, err, &ce)
	form, _ := ce.GetMetadata(MetaKeyForm)
	field, _ := ce.GetMetadata(MetaKeyField)
	assert.Equal(t, "db", form)
	assert.Equal(t, "port", field)
}

func TestLoadForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFormYAML), 0o644))

	form, err := LoadForm(path)
	require.NoError(t, err)
	assert.Equal(t, "service", form.Name)

	_, err = LoadForm(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestForm_MarshalRoundTrip(t *testing.T) {
	form := mustParseForm(t, testFormYAML)

	data, err := form.Marshal()
	require.NoError(t, err)

	again, err := ParseForm(data)
	require.NoError(t, err)
	assert.Equal(t, form, again)
}

func TestForm_Run(t *testing.T) {
	form := mustParseForm(t, testFormYAML)
	input := "api.local\n70000\n443\n\n0.25\n-3\n\nturbo\nsafe\n"
	var out strings.Builder

	answers, err := form.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"host", "port", "debug", "ratio", "offset", "timeout", "mode"}, answers.Keys())
	assert.Equal(t, "service", answers.Form)

	host, ok := AnswerAs[string](answers, "host")
	assert.True(t, ok)
	assert.Equal(t, "api.local", host)

	port, _ := AnswerAs[uint64](answers, "port")
	assert.Equal(t, uint64(443), port)

	debug, ok := AnswerAs[bool](answers, "debug")
	assert.True(t, ok)
	assert.False(t, debug)

	ratio, _ := AnswerAs[float64](answers, "ratio")
	assert.InDelta(t, 0.25, ratio, 0)

	offset, _ := AnswerAs[int64](answers, "offset")
	assert.Equal(t, int64(-3), offset)

	timeout, _ := AnswerAs[time.Duration](answers, "timeout")
	assert.Equal(t, 5*time.Second, timeout)

	mode, _ := AnswerAs[string](answers, "mode")
	assert.Equal(t, "safe", mode)

	transcript := out.String()
	assert.Contains(t, transcript, "Port: [default: 8080] ")
	assert.Contains(t, transcript, "Port must be 1..65535\n")
	assert.Contains(t, transcript, NoticeValidationFallback+"\n")
}

func TestForm_RunStopsAtFailingField(t *testing.T) {
	form := mustParseForm(t, testFormYAML)

	answers, err := form.Run(context.Background(), strings.NewReader("api.local\n0\n0\n"), &strings.Builder{})
	require.Error(t, err)

	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "service", ferr.Form)
	assert.Equal(t, "port", ferr.Field)
	assert.Equal(t, KindValidation, KindOf(err))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Port must be 1..65535", verr.Message)

	require.NotNil(t, answers)
	assert.Equal(t, []string{"host"}, answers.Keys())
}

func TestForm_RunEndOfInput(t *testing.T) {
	form := mustParseForm(t, "name: x\nfields:\n  - name: a\n    default: dflt\n  - name: b\n")

	answers, err := form.Run(context.Background(), strings.NewReader(""), &strings.Builder{})

	assert.ErrorIs(t, err, ErrEmptyNotAllowed)
	v, _ := answers.Get("a")
	assert.Equal(t, "dflt", v)
}

func TestForm_RunCanceled(t *testing.T) {
	form := mustParseForm(t, testFormYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	answers, err := form.Run(ctx, strings.NewReader("x\n"), &out)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, answers.Len())
	assert.Empty(t, out.String())
}

func TestForm_RunTrimFalse(t *testing.T) {
	form := mustParseForm(t, "name: x\nfields:\n  - name: raw\n    trim: false\n")

	answers, err := form.Run(context.Background(), strings.NewReader("  padded \n"), &strings.Builder{})
	require.NoError(t, err)

	v, _ := AnswerAs[string](answers, "raw")
	assert.Equal(t, "  padded ", v)
}

func TestForm_RunRejectsInvalidForm(t *testing.T) {
	form := &Form{Name: "broken"}
	_, err := form.Run(context.Background(), strings.NewReader(""), &strings.Builder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFormEmpty)
}
