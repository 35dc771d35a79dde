package askit

import (
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"io", NewIOError(OperationRead, io.ErrUnexpectedEOF), KindIO},
		{"parse", NewParseError("int", strconv.ErrSyntax), KindParse},
		{"empty", NewEmptyNotAllowedError(), KindEmptyNotAllowed},
		{"retries", NewRetriesExceededError(3, nil), KindRetriesExceeded},
		{"validation", NewValidationError("Invalid port"), KindValidation},
		{"field wraps kind", &FieldError{Field: "port", Err: NewValidationError("x")}, KindValidation},
		{"hook abort", NewHookError(HookBeforeRead, errors.New("stop")), KindOther},
		{"plain", errors.New("boom"), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestParseError(t *testing.T) {
	_, cause := strconv.ParseUint("70000", 10, 16)
	err := NewParseError("uint16", cause)

	assert.Equal(t, "Failed to parse as uint16: value out of range", err.Error())
	assert.Equal(t, "value out of range", err.Cause)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, strconv.ErrRange)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("Invalid port")

	assert.Equal(t, "Validation failed: Invalid port", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrRetriesExceeded)
}

func TestIOError(t *testing.T) {
	cause := errors.New("broken pipe")
	err := NewIOError(OperationWrite, cause)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), ErrMsgIO)

	var ce *cuserr.CustomError
	require.ErrorAs(t, err, &ce)
	op, ok := ce.GetMetadata(MetaKeyOperation)
	assert.True(t, ok)
	assert.Equal(t, OperationWrite, op)
}

func TestRetriesExceededError(t *testing.T) {
	last := NewParseError("int", strconv.ErrSyntax)
	err := NewRetriesExceededError(2, last)

	assert.ErrorIs(t, err, ErrRetriesExceeded)
	assert.NotErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), ErrMsgRetriesExceeded)

	var ce *cuserr.CustomError
	require.ErrorAs(t, err, &ce)
	attempts, _ := ce.GetMetadata(MetaKeyAttempts)
	assert.Equal(t, "2", attempts)
	lastMsg, _ := ce.GetMetadata(MetaKeyLastError)
	assert.Equal(t, last.Error(), lastMsg)
}

func TestEmptyNotAllowedError(t *testing.T) {
	err := NewEmptyNotAllowedError()
	assert.ErrorIs(t, err, ErrEmptyNotAllowed)
	assert.Contains(t, err.Error(), ErrMsgEmptyNotAllowed)
}

func TestFieldError(t *testing.T) {
	inner := NewValidationError("bad")
	err := &FieldError{Form: "db", Field: "port", Err: inner}

	assert.Equal(t, `field "port": Validation failed: bad`, err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bad", verr.Message)
}

func TestFormAndCatalogErrors(t *testing.T) {
	t.Run("form error metadata", func(t *testing.T) {
		err := NewFormError(ErrMsgFormFieldType, "db", "port", nil)

		var ce *cuserr.CustomError
		require.ErrorAs(t, err, &ce)
		form, _ := ce.GetMetadata(MetaKeyForm)
		field, _ := ce.GetMetadata(MetaKeyField)
		assert.Equal(t, "db", form)
		assert.Equal(t, "port", field)
		assert.Contains(t, err.Error(), ErrMsgFormFieldType)
	})

	t.Run("form error keeps cause", func(t *testing.T) {
		cause := errors.New("yaml: bad")
		err := NewFormError(ErrMsgFormInvalid, "", "", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("not found", func(t *testing.T) {
		err := NewFormNotFoundError("missing")
		assert.ErrorIs(t, err, ErrFormNotFound)
		assert.Contains(t, err.Error(), ErrMsgFormNotFound)
	})

	t.Run("closed", func(t *testing.T) {
		assert.ErrorIs(t, NewCatalogClosedError(), ErrCatalogClosed)
	})
}

func TestMust(t *testing.T) {
	assert.Equal(t, 5, Must(5, nil))
	assert.PanicsWithValue(t, "askit error: boom", func() {
		Must(0, errors.New("boom"))
	})
}
