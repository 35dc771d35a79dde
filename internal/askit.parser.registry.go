package internal

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// AnyParser converts a line into a value of one registered type.
// The public package wraps typed ParseFuncs into this shape.
type AnyParser func(s string) (any, error)

// ParserRegistry maps target types to custom conversion functions with
// first-come-wins semantics. It is safe for concurrent use.
type ParserRegistry struct {
	parsers map[reflect.Type]AnyParser
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewParserRegistry creates an empty registry.
func NewParserRegistry(logger *zap.Logger) *ParserRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserRegistryCreated)
	return &ParserRegistry{
		parsers: make(map[reflect.Type]AnyParser),
		logger:  logger,
	}
}

// Register adds a parser for t. A second registration for the same type is
// rejected and the first parser stays in place.
func (r *ParserRegistry) Register(t reflect.Type, p AnyParser) error {
	if t == nil {
		return NewRegistryError(ErrMsgNilType, "")
	}
	if p == nil {
		return NewRegistryError(ErrMsgNilParser, t.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[t]; exists {
		r.logger.Warn(LogMsgParserCollision, zap.String(LogFieldTypeName, t.String()))
		return NewRegistryError(ErrMsgParserAlreadyExists, t.String())
	}

	r.parsers[t] = p
	r.logger.Debug(LogMsgParserRegistered, zap.String(LogFieldTypeName, t.String()))
	return nil
}

// Unregister removes the parser for t, reporting whether one existed.
func (r *ParserRegistry) Unregister(t reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[t]; !exists {
		return false
	}
	delete(r.parsers, t)
	r.logger.Debug(LogMsgParserUnregistered, zap.String(LogFieldTypeName, t.String()))
	return true
}

// Get retrieves the parser registered for t.
func (r *ParserRegistry) Get(t reflect.Type) (AnyParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[t]
	return p, ok
}

// List returns the registered type names in sorted order.
func (r *ParserRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for t := range r.parsers {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message  string
	TypeName string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, typeName string) *RegistryError {
	return &RegistryError{
		Message:  message,
		TypeName: typeName,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf(ErrFmtTypeMessage, e.Message, e.TypeName)
	}
	return e.Message
}
