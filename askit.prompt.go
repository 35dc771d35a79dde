package askit

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/itsatony/go-askit/internal"
	"go.uber.org/zap"
)

// stdin is shared by every prompt reading from os.Stdin so that lines
// buffered by one prompt are not lost to the next.
var stdin = sync.OnceValue(func() internal.LineSource {
	return bufio.NewReader(os.Stdin)
})

// Prompt is the untyped builder: a message, an optional string default, a
// retry budget and a trim policy. Setters mutate the prompt and return it for
// chaining. A Prompt is not safe for concurrent use.
type Prompt struct {
	message    string
	defaultStr string
	hasDefault bool
	retries    int
	trim       bool
	config     *promptConfig
}

// New creates a prompt with no default, no retries and trimming enabled.
func New(message string, opts ...Option) *Prompt {
	config := resolveConfig(opts)
	config.logger.Debug(LogMsgPromptCreated, zap.String(LogFieldMessage, message))
	return &Prompt{
		message: message,
		retries: DefaultRetries,
		trim:    DefaultTrim,
		config:  config,
	}
}

// Default sets a string default. On empty input or end of stream it is
// parsed as the target type exactly like typed input.
func (p *Prompt) Default(s string) *Prompt {
	p.defaultStr = s
	p.hasDefault = true
	return p
}

// Retries sets how many extra attempts follow the first. Negative values count as zero.
func (p *Prompt) Retries(n int) *Prompt {
	p.retries = max(n, 0)
	return p
}

// Trim controls whether surrounding whitespace is stripped from each line.
// The line terminator is always removed.
func (p *Prompt) Trim(yes bool) *Prompt {
	p.trim = yes
	return p
}

// Message returns the configured message.
func (p *Prompt) Message() string { return p.message }

// DefaultString returns the string default and whether one is set.
func (p *Prompt) DefaultString() (string, bool) { return p.defaultStr, p.hasDefault }

// RetryBudget returns the number of attempts allowed after the first.
func (p *Prompt) RetryBudget() int { return p.retries }

// TrimInput reports whether lines are trimmed.
func (p *Prompt) TrimInput() bool { return p.trim }

// GetWith reads from r and writes prompts and notices to w until a T is
// produced or the retry budget runs out.
//
// Empty input uses the string default when one is set; otherwise it fails
// with EmptyNotAllowed when no retries are configured and is retried
// otherwise. Pass a *bufio.Reader when several prompts share one stream.
func GetWith[T any](p *Prompt, r io.Reader, w io.Writer) (T, error) {
	return getWith[T](context.Background(), p, internal.NewLineSource(r), w)
}

// Get is GetWith against standard input and standard output.
func Get[T any](p *Prompt) (T, error) {
	return getWith[T](context.Background(), p, stdin(), os.Stdout)
}

// Input reads one line from standard input as a string.
func Input(message string) (string, error) {
	return Get[string](New(message))
}

func getWith[T any](ctx context.Context, p *Prompt, src internal.LineSource, w io.Writer) (T, error) {
	if p == nil {
		var zero T
		return zero, NewConfigError(ErrMsgNilPrompt)
	}
	res := &resolution[T]{
		ctx:         ctx,
		config:      p.config,
		id:          p.config.newID(),
		message:     p.message,
		defaultStr:  p.defaultStr,
		hasDefStr:   p.hasDefault,
		retries:     p.retries,
		trim:        p.trim,
		parse:       Parse[T],
		typeName:    TypeName[T](),
		strictEmpty: true,
	}
	return res.run(src, w)
}
