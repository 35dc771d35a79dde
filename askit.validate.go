package askit

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/itsatony/go-cuserr"
)

// validate is the shared rule engine behind MatchesTag. *validator.Validate
// caches parsed tags and is safe for concurrent use.
var validate = sync.OnceValue(func() *validator.Validate {
	return validator.New()
})

// Between accepts values in the closed range [lo, hi].
func Between[T cmp.Ordered](lo, hi T) func(T) bool {
	return func(v T) bool {
		return v >= lo && v <= hi
	}
}

// OneOf accepts only the listed values.
func OneOf[T comparable](allowed ...T) func(T) bool {
	set := slices.Clone(allowed)
	return func(v T) bool {
		return slices.Contains(set, v)
	}
}

// NotBlank rejects strings that are empty after trimming.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MatchesTag accepts values that satisfy a validator tag such as
// "min=1,max=65535" or "email". An unknown rule panics on first use, so run
// CheckTag first when the tag comes from configuration.
func MatchesTag[T any](tag string) func(T) bool {
	return func(v T) bool {
		return validate().Var(v, tag) == nil
	}
}

// CheckTag reports whether tag is usable for values of T. Unknown rule
// names make the validator panic, which is turned into an error here.
func CheckTag[T any](tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = cuserr.NewValidationError(ErrCodeValidation, ErrMsgInvalidRule).
				WithMetadata(MetaKeyTag, tag).
				WithMetadata(MetaKeyTypeName, TypeName[T]())
		}
	}()
	var zero T
	_ = validate().Var(zero, tag)
	return nil
}

// All accepts a value only when every predicate does.
func All[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}
