package internal

import (
	"errors"
	"reflect"
	"strconv"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// ConvertInto parses s into the value dst points at, using the built-in
// conversion for dst's kind. handled is false when the kind has no built-in
// conversion; dst is left untouched in that case and on error.
//
// Named types convert through their underlying kind, so `type Port uint16`
// parses like uint16. Integers are base 10.
func ConvertInto(s string, dst any) (handled bool, err error) {
	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false, errors.New(ErrMsgNilDestination)
	}
	v := rv.Elem()
	t := v.Type()

	if t == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return true, err
		}
		v.SetInt(int64(d))
		return true, nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return true, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return true, err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return true, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return true, err
		}
		v.SetFloat(f)
	case reflect.Complex64, reflect.Complex128:
		c, err := strconv.ParseComplex(s, t.Bits())
		if err != nil {
			return true, err
		}
		v.SetComplex(c)
	case reflect.Slice:
		if t.Elem().Kind() != reflect.Uint8 {
			return false, nil
		}
		v.SetBytes([]byte(s))
	default:
		return false, nil
	}
	return true, nil
}

// CauseText returns the short description of a conversion failure.
// strconv errors carry the input and function name, which the caller
// already reports, so only their inner reason is kept.
func CauseText(err error) string {
	if err == nil {
		return ""
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err != nil {
		return numErr.Err.Error()
	}
	return err.Error()
}
