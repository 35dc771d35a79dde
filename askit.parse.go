package askit

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"

	"github.com/itsatony/go-askit/internal"
)

// ParseFunc converts one line of input into a T. A returned error becomes
// the Cause of a ParseError.
type ParseFunc[T any] func(s string) (T, error)

// parsers holds conversions registered with RegisterParser. They take
// precedence over every built-in conversion.
var parsers = internal.NewParserRegistry(nil)

// RegisterParser installs fn as the conversion for T, process-wide.
// Registration is first-come-wins: a second parser for the same type is
// rejected with an error.
func RegisterParser[T any](fn ParseFunc[T]) error {
	var p internal.AnyParser
	if fn != nil {
		p = func(s string) (any, error) { return fn(s) }
	}
	return parsers.Register(reflect.TypeOf((*T)(nil)).Elem(), p)
}

// MustRegisterParser registers fn and panics if registration fails.
func MustRegisterParser[T any](fn ParseFunc[T]) {
	if err := RegisterParser(fn); err != nil {
		panic(err)
	}
}

// UnregisterParser removes the registered conversion for T.
// Returns true if one existed.
func UnregisterParser[T any]() bool {
	return parsers.Unregister(reflect.TypeOf((*T)(nil)).Elem())
}

// RegisteredParsers lists the type names with a registered conversion.
func RegisteredParsers() []string {
	return parsers.List()
}

// TypeName returns the Go name of T as reported in parse errors.
func TypeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Parse converts s into a T.
//
// Conversions are tried in order:
//  1. a parser registered with RegisterParser
//  2. encoding.TextUnmarshaler implemented by *T (or by T's pointee when T is a pointer)
//  3. the built-in conversion for T's kind: string, bool, signed and unsigned
//     integers (base 10), floats, complex numbers, []byte and time.Duration
//
// Every failure is returned as a *ParseError carrying T's name.
func Parse[T any](s string) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	name := t.String()

	if p, ok := parsers.Get(t); ok {
		v, err := p(s)
		if err != nil {
			return zero, NewParseError(name, err)
		}
		typed, _ := v.(T)
		return typed, nil
	}

	var v T
	if tu, ok := any(&v).(encoding.TextUnmarshaler); ok {
		if err := tu.UnmarshalText([]byte(s)); err != nil {
			return zero, NewParseError(name, err)
		}
		return v, nil
	}

	if t.Kind() == reflect.Pointer {
		elem := reflect.New(t.Elem())
		if tu, ok := elem.Interface().(encoding.TextUnmarshaler); ok {
			if err := tu.UnmarshalText([]byte(s)); err != nil {
				return zero, NewParseError(name, err)
			}
			typed, _ := elem.Interface().(T)
			return typed, nil
		}
	}

	handled, err := internal.ConvertInto(s, &v)
	if !handled {
		return zero, NewParseError(name, errors.New(ErrMsgNoParser))
	}
	if err != nil {
		return zero, NewParseError(name, err)
	}
	return v, nil
}

// ParserFor returns the default conversion for T as a ParseFunc.
func ParserFor[T any]() ParseFunc[T] {
	return Parse[T]
}

// Format renders v so that Parse[T] reproduces it for loss-free types.
func Format[T any](v T) string {
	switch x := any(v).(type) {
	case encoding.TextMarshaler:
		if b, err := x.MarshalText(); err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return x.String()
	case []byte:
		return string(x)
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return string(rv.Bytes())
	}
	return fmt.Sprint(v)
}

func causeText(err error) string {
	return internal.CauseText(err)
}
