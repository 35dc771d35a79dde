package askit

import (
	"context"
	"io"
	"os"

	"github.com/itsatony/go-askit/internal"
)

// TypedPrompt extends a Prompt with a typed default, a validator and a
// validation message. Build one with To.
//
// A TypedPrompt is meant to be resolved once: the typed default is handed
// out on first use and is gone for any later call.
type TypedPrompt[T any] struct {
	base          Prompt
	defaultVal    T
	hasDefaultVal bool
	validator     func(T) bool
	validationMsg string
	hasMessage    bool
	parse         ParseFunc[T]
}

// To upgrades p to a typed prompt for T. The prompt's message, string
// default, retries, trim policy and options carry over; later changes to p
// do not affect the returned prompt.
func To[T any](p *Prompt) *TypedPrompt[T] {
	tp := &TypedPrompt[T]{parse: ParserFor[T]()}
	if p != nil {
		tp.base = *p
	} else {
		tp.base = *New("")
	}
	return tp
}

// DefaultVal sets a typed default. It bypasses parsing and takes precedence
// over a string default.
func (tp *TypedPrompt[T]) DefaultVal(v T) *TypedPrompt[T] {
	tp.defaultVal = v
	tp.hasDefaultVal = true
	return tp
}

// Default sets the string default, parsed like typed input.
func (tp *TypedPrompt[T]) Default(s string) *TypedPrompt[T] {
	tp.base.Default(s)
	return tp
}

// Validate sets the predicate each parsed value must satisfy.
func (tp *TypedPrompt[T]) Validate(fn func(T) bool) *TypedPrompt[T] {
	tp.validator = fn
	return tp
}

// Message sets the text shown when the validator rejects a value.
func (tp *TypedPrompt[T]) Message(msg string) *TypedPrompt[T] {
	tp.validationMsg = msg
	tp.hasMessage = true
	return tp
}

// Retries sets how many extra attempts follow the first. Negative values count as zero.
func (tp *TypedPrompt[T]) Retries(n int) *TypedPrompt[T] {
	tp.base.Retries(n)
	return tp
}

// Trim controls whether surrounding whitespace is stripped from each line.
func (tp *TypedPrompt[T]) Trim(yes bool) *TypedPrompt[T] {
	tp.base.Trim(yes)
	return tp
}

// Parser replaces the conversion used for this prompt only.
// A nil fn restores the default conversion.
func (tp *TypedPrompt[T]) Parser(fn ParseFunc[T]) *TypedPrompt[T] {
	if fn == nil {
		fn = ParserFor[T]()
	}
	tp.parse = fn
	return tp
}

// HasDefaultVal reports whether a typed default is still available.
func (tp *TypedPrompt[T]) HasDefaultVal() bool { return tp.hasDefaultVal }

// GetWith reads from r and writes prompts and notices to w until a valid T
// is produced or the retry budget runs out.
//
// Unlike the untyped prompt, empty input without any default always counts
// against the retry budget. A rejected value is reported with the
// validation message and a fresh line is read.
func (tp *TypedPrompt[T]) GetWith(r io.Reader, w io.Writer) (T, error) {
	return tp.resolve(context.Background(), internal.NewLineSource(r), w)
}

// Get is GetWith against standard input and standard output.
func (tp *TypedPrompt[T]) Get() (T, error) {
	return tp.resolve(context.Background(), stdin(), os.Stdout)
}

func (tp *TypedPrompt[T]) resolve(ctx context.Context, src internal.LineSource, w io.Writer) (T, error) {
	msg := NoticeValidationFallback
	if tp.hasMessage {
		msg = tp.validationMsg
	}
	res := &resolution[T]{
		ctx:           ctx,
		config:        tp.base.config,
		id:            tp.base.config.newID(),
		message:       tp.base.message,
		defaultStr:    tp.base.defaultStr,
		hasDefStr:     tp.base.hasDefault,
		defaultVal:    tp.defaultVal,
		hasDefVal:     tp.hasDefaultVal,
		retries:       tp.base.retries,
		trim:          tp.base.trim,
		parse:         tp.parse,
		validator:     tp.validator,
		validationMsg: msg,
		typeName:      TypeName[T](),
	}
	v, err := res.run(src, w)
	if res.consumedDefault {
		var zero T
		tp.defaultVal = zero
		tp.hasDefaultVal = false
	}
	return v, err
}
