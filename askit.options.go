package askit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Prompt.
type Option func(*promptConfig)

// promptConfig holds the ambient configuration shared by a Prompt and the
// TypedPrompt derived from it.
type promptConfig struct {
	logger *zap.Logger
	hooks  *HookRegistry
	echo   bool
	newID  func() string
}

// defaultPromptConfig returns the default prompt configuration.
func defaultPromptConfig() *promptConfig {
	return &promptConfig{
		logger: nil,
		hooks:  nil,
		echo:   false,
		newID:  uuid.NewString,
	}
}

func resolveConfig(opts []Option) *promptConfig {
	config := defaultPromptConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(config)
		}
	}
	if config.logger == nil {
		config.logger = zap.NewNop()
	}
	if config.newID == nil {
		config.newID = uuid.NewString
	}
	return config
}

// WithLogger sets the logger used for resolution events.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *promptConfig) {
		c.logger = logger
	}
}

// WithHooks attaches a hook registry that is run at every lifecycle point.
// Default: nil (no hooks)
func WithHooks(hooks *HookRegistry) Option {
	return func(c *promptConfig) {
		c.hooks = hooks
	}
}

// WithEcho writes each consumed line back to the sink after it is read.
// Useful when input is piped and the transcript should still read naturally.
// Default: false
func WithEcho(echo bool) Option {
	return func(c *promptConfig) {
		c.echo = echo
	}
}

// WithIDGenerator overrides how resolution ids are produced.
// Default: uuid.NewString
func WithIDGenerator(fn func() string) Option {
	return func(c *promptConfig) {
		c.newID = fn
	}
}
