package askit

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/itsatony/go-askit/internal"
	"go.uber.org/zap"
)

// resolution drives one read/parse/validate/retry loop. It is built by the
// terminal call of a Prompt or TypedPrompt and discarded afterwards.
type resolution[T any] struct {
	ctx    context.Context
	config *promptConfig
	logger *zap.Logger
	id     string

	message    string
	defaultStr string
	hasDefStr  bool
	defaultVal T
	hasDefVal  bool
	retries    int
	trim       bool

	parse         ParseFunc[T]
	validator     func(T) bool
	validationMsg string
	typeName      string

	// strictEmpty makes an empty line with no default and no retries fail
	// with EmptyNotAllowed instead of consuming the budget.
	strictEmpty bool

	// consumedDefault is set once the typed default has been handed out.
	consumedDefault bool

	// meta is shared by every HookData of this resolution.
	meta map[string]any
}

func (r *resolution[T]) run(src internal.LineSource, w io.Writer) (T, error) {
	r.meta = make(map[string]any)
	r.logger = r.config.logger.With(zap.String(LogFieldResolutionID, r.id))
	r.logger.Debug(LogMsgResolveStart,
		zap.String(LogFieldMessage, r.message),
		zap.String(LogFieldTypeName, r.typeName),
		zap.Int(LogFieldRetries, r.retries),
	)

	attemptsLeft := r.retries + 1
	for attempt := 1; ; attempt++ {
		data := r.hookData(attempt, attemptsLeft)
		r.logger.Debug(LogMsgAttemptStart, zap.Int(LogFieldAttempt, attempt), zap.Int(LogFieldAttemptsLeft, attemptsLeft))
		if err := r.runHook(HookBeforeRead, data); err != nil {
			return r.fail(attempt, err)
		}

		if err := internal.WriteAndFlush(w, r.render()); err != nil {
			return r.fail(attempt, NewIOError(OperationWrite, err))
		}

		line, eof, err := internal.ReadLine(src)
		if err != nil {
			return r.fail(attempt, NewIOError(OperationRead, err))
		}
		if eof {
			r.logger.Debug(LogMsgEndOfStream, zap.Int(LogFieldAttempt, attempt))
			if v, used, err := r.useDefault(); used {
				if err != nil {
					return r.fail(attempt, err)
				}
				return r.succeed(v, attempt)
			}
			return r.fail(attempt, NewEmptyNotAllowedError())
		}

		if r.config.echo {
			if _, err := io.WriteString(w, line+internal.LineFeed); err != nil {
				return r.fail(attempt, NewIOError(OperationWrite, err))
			}
		}
		if r.trim {
			line = strings.TrimSpace(line)
		}
		r.logger.Debug(LogMsgInputReceived, zap.Int(LogFieldInputLength, len(line)))
		data.Input = line
		r.runAfterHook(HookAfterRead, data)

		if line == "" {
			if v, used, err := r.useDefault(); used {
				if err != nil {
					return r.fail(attempt, err)
				}
				return r.succeed(v, attempt)
			}
			if r.strictEmpty && r.retries == 0 {
				return r.fail(attempt, NewEmptyNotAllowedError())
			}
			attemptsLeft--
			if attemptsLeft == 0 {
				return r.fail(attempt, NewRetriesExceededError(attempt, ErrEmptyNotAllowed))
			}
			if err := r.retry(w, data, RetryReasonEmpty, ErrEmptyNotAllowed, NoticeEmptyRetry); err != nil {
				return r.fail(attempt, err)
			}
			continue
		}

		v, err := r.parseLine(line)
		if err != nil {
			attemptsLeft--
			if attemptsLeft == 0 {
				return r.fail(attempt, NewRetriesExceededError(attempt, err))
			}
			if rerr := r.retry(w, data, RetryReasonParse, err, err.Error()); rerr != nil {
				return r.fail(attempt, rerr)
			}
			continue
		}

		if r.validator != nil && !r.validator(v) {
			verr := NewValidationError(r.validationMsg)
			attemptsLeft--
			if attemptsLeft == 0 {
				return r.fail(attempt, verr)
			}
			if err := r.retry(w, data, RetryReasonValidation, verr, r.validationMsg); err != nil {
				return r.fail(attempt, err)
			}
			continue
		}

		return r.succeed(v, attempt)
	}
}

// render builds the prompt text for the current attempt. A typed default
// that has already been consumed no longer produces a hint.
func (r *resolution[T]) render() string {
	hint := ""
	switch {
	case r.hasDefVal && !r.consumedDefault:
		hint = internal.HintDefaultSet
	case r.hasDefStr:
		hint = internal.DefaultHint(r.defaultStr)
	}
	return internal.RenderPrompt(r.message, hint)
}

// useDefault returns the value substituted for missing input. The typed
// default wins and is handed out at most once; a string default is parsed
// like real input and a failure is returned as-is, without touching the
// retry budget.
func (r *resolution[T]) useDefault() (T, bool, error) {
	var zero T
	if r.hasDefVal && !r.consumedDefault {
		r.consumedDefault = true
		v := r.defaultVal
		r.defaultVal = zero
		r.logger.Debug(LogMsgDefaultUsed, zap.String(LogFieldDefaultKind, DefaultKindTyped))
		return v, true, nil
	}
	if !r.hasDefStr {
		return zero, false, nil
	}
	v, err := r.parseLine(r.defaultStr)
	if err != nil {
		r.logger.Warn(LogMsgDefaultUnparsable, zap.String(LogFieldTypeName, r.typeName), zap.Error(err))
		return zero, true, err
	}
	r.logger.Debug(LogMsgDefaultUsed, zap.String(LogFieldDefaultKind, DefaultKindString))
	return v, true, nil
}

// parseLine applies the conversion and normalizes foreign errors into a
// *ParseError so callers always see the same shape.
func (r *resolution[T]) parseLine(s string) (T, error) {
	v, err := r.parse(s)
	if err == nil {
		return v, nil
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return v, perr
	}
	return v, NewParseError(r.typeName, err)
}

func (r *resolution[T]) retry(w io.Writer, data *HookData, reason string, cause error, notice string) error {
	r.logger.Debug(LogMsgRetryScheduled, zap.String(LogFieldReason, reason), zap.Error(cause))
	data.Reason = reason
	data.Error = cause
	if err := r.runHook(HookBeforeRetry, data); err != nil {
		return err
	}
	if _, err := io.WriteString(w, notice+internal.LineFeed); err != nil {
		return NewIOError(OperationWrite, err)
	}
	return nil
}

func (r *resolution[T]) succeed(v T, attempts int) (T, error) {
	r.logger.Debug(LogMsgResolveComplete, zap.Int(LogFieldAttempt, attempts))
	data := r.hookData(attempts, 0)
	data.Value = v
	r.runAfterHook(HookAfterResolve, data)
	return v, nil
}

func (r *resolution[T]) fail(attempt int, err error) (T, error) {
	var zero T
	r.logger.Debug(LogMsgResolveFailed, zap.Int(LogFieldAttempt, attempt), zap.String(LogFieldErrorKind, string(KindOf(err))), zap.Error(err))
	data := r.hookData(attempt, 0)
	data.Error = err
	r.runAfterHook(HookAfterResolve, data)
	return zero, err
}

func (r *resolution[T]) hookData(attempt, attemptsLeft int) *HookData {
	data := NewHookData(r.id, r.message, r.typeName)
	data.Metadata = r.meta
	data.Attempt = attempt
	data.AttemptsLeft = attemptsLeft
	return data
}

func (r *resolution[T]) runHook(point HookPoint, data *HookData) error {
	if r.config.hooks == nil {
		return nil
	}
	return r.config.hooks.Run(r.ctx, point, data)
}

func (r *resolution[T]) runAfterHook(point HookPoint, data *HookData) {
	if err := r.runHook(point, data); err != nil {
		r.logger.Warn(LogMsgHookFailed, zap.String(LogFieldHookPoint, string(point)), zap.Error(err))
	}
}
