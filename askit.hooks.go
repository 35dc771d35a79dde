package askit

import (
	"context"
	"sync"
	"time"
)

// HookPoint identifies when a hook is called during a resolution.
type HookPoint string

// Hook points for the resolution lifecycle.
const (
	// HookBeforeRead is called after the prompt is chosen and before it is
	// written and a line is read. Runs once per attempt.
	HookBeforeRead HookPoint = "before_read"

	// HookAfterRead is called once a line has been read and trimmed.
	// Not called at end of stream.
	HookAfterRead HookPoint = "after_read"

	// HookBeforeRetry is called before the retry notice is written.
	HookBeforeRetry HookPoint = "before_retry"

	// HookAfterResolve is called once with the final value or error.
	HookAfterResolve HookPoint = "after_resolve"
)

// Hook is a function called at specific points during a resolution.
// Return an error to abort the resolution (for "before" hooks).
// Errors from "after" hooks are logged but don't affect the result.
type Hook func(ctx context.Context, point HookPoint, data *HookData) error

// HookData carries context information to hooks.
type HookData struct {
	// ResolutionID identifies one terminal Get call.
	ResolutionID string

	// Message is the prompt message as configured (without hints).
	Message string

	// TypeName is the Go name of the target type.
	TypeName string

	// Attempt is the 1-based attempt number.
	Attempt int

	// AttemptsLeft is the remaining budget, including the current attempt.
	AttemptsLeft int

	// Input is the line read (after trimming) for after_read and before_retry.
	Input string

	// Reason is the retry cause for before_retry: empty, parse or validation.
	Reason string

	// Value is the resolved value (after_resolve, success only).
	Value any

	// Error is the failure (before_retry and after_resolve).
	Error error

	// Metadata allows hooks to pass data to each other.
	Metadata map[string]any
}

// NewHookData creates a new HookData for a resolution.
func NewHookData(resolutionID, message, typeName string) *HookData {
	return &HookData{
		ResolutionID: resolutionID,
		Message:      message,
		TypeName:     typeName,
		Metadata:     make(map[string]any),
	}
}

// SetMetadata sets a metadata value.
func (d *HookData) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// GetMetadata gets a metadata value.
func (d *HookData) GetMetadata(key string) (any, bool) {
	if d.Metadata == nil {
		return nil, false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// HookRegistry manages hook registration and execution.
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[HookPoint][]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register adds a hook for the specified point.
func (r *HookRegistry) Register(point HookPoint, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[point] = append(r.hooks[point], hook)
}

// RegisterMultiple adds a hook for multiple points.
func (r *HookRegistry) RegisterMultiple(hook Hook, points ...HookPoint) {
	for _, point := range points {
		r.Register(point, hook)
	}
}

// Clear removes all hooks for a specific point.
func (r *HookRegistry) Clear(point HookPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, point)
}

// ClearAll removes all hooks.
func (r *HookRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = make(map[HookPoint][]Hook)
}

// Run executes all hooks for the specified point.
// For "before" hooks, the first error stops execution and is returned as a *HookError.
// For "after" hooks, all hooks run and the first error is returned for logging.
func (r *HookRegistry) Run(ctx context.Context, point HookPoint, data *HookData) error {
	r.mu.RLock()
	hooks := r.hooks[point]
	r.mu.RUnlock()

	var first error
	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil {
			if isBeforeHook(point) {
				return NewHookError(point, err)
			}
			if first == nil {
				first = NewHookError(point, err)
			}
		}
	}
	return first
}

// Count returns the number of hooks registered for a point.
func (r *HookRegistry) Count(point HookPoint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[point])
}

// HasHooks checks if any hooks are registered for a point.
func (r *HookRegistry) HasHooks(point HookPoint) bool {
	return r.Count(point) > 0
}

// isBeforeHook checks if a hook point is a "before" hook.
func isBeforeHook(point HookPoint) bool {
	switch point {
	case HookBeforeRead, HookBeforeRetry:
		return true
	default:
		return false
	}
}

// LoggingHook creates a hook that forwards every event to logFn.
func LoggingHook(logFn func(point HookPoint, data *HookData)) Hook {
	return func(ctx context.Context, point HookPoint, data *HookData) error {
		logFn(point, data)
		return nil
	}
}

// TimingHook creates a hook that records when the first attempt started.
// Register it on HookBeforeRead and HookAfterResolve; the returned function
// reports the elapsed time from within the after_resolve hook.
func TimingHook() (Hook, func(*HookData) time.Duration) {
	const metadataKey = "_timing_start"

	hook := func(ctx context.Context, point HookPoint, data *HookData) error {
		if point == HookBeforeRead {
			if _, ok := data.GetMetadata(metadataKey); !ok {
				data.SetMetadata(metadataKey, time.Now())
			}
		}
		return nil
	}

	elapsed := func(data *HookData) time.Duration {
		start, ok := data.GetMetadata(metadataKey)
		if !ok {
			return 0
		}
		t, ok := start.(time.Time)
		if !ok {
			return 0
		}
		return time.Since(t)
	}

	return hook, elapsed
}

// Transcript records the lines a resolution consumed, in order.
type Transcript struct {
	mu    sync.Mutex
	lines []string
}

// Hook returns the hook to register on HookAfterRead.
func (t *Transcript) Hook() Hook {
	return func(ctx context.Context, point HookPoint, data *HookData) error {
		if point != HookAfterRead {
			return nil
		}
		t.mu.Lock()
		t.lines = append(t.lines, data.Input)
		t.mu.Unlock()
		return nil
	}
}

// Lines returns a copy of the recorded lines.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// Hook error messages.
const (
	ErrMsgHookFailed = "hook execution failed"
)

// HookError represents an error from hook execution.
type HookError struct {
	Message string
	Point   HookPoint
	Cause   error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	msg := e.Message
	if e.Point != "" {
		msg += " (hook: " + string(e.Point) + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// NewHookError creates a new hook error.
func NewHookError(point HookPoint, cause error) *HookError {
	return &HookError{
		Message: ErrMsgHookFailed,
		Point:   point,
		Cause:   cause,
	}
}
