package formatter

import (
	"math"
	"reflect"
)

// integerParts splits an integer-like value into sign and magnitude.
// Floats are truncated toward zero; bools count as 0 and 1.
func integerParts(v any) (neg bool, mag uint64, ok bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			return true, uint64(-(n + 1)) + 1, true
		}
		return false, uint64(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return false, rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(rv.Float())
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1<<63 {
			return false, 0, false
		}
		if f < 0 {
			return true, uint64(-f), true
		}
		return false, uint64(f), true
	case reflect.Bool:
		if rv.Bool() {
			return false, 1, true
		}
		return false, 0, true
	}
	return false, 0, false
}

// floatValue converts any numeric value (or bool) to float64.
func floatValue(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	neg, mag, ok := integerParts(v)
	if !ok {
		return 0, false
	}
	if neg {
		return -float64(mag), true
	}
	return float64(mag), true
}

// isInteger and isFloat report the value's kind without coercion.
func isInteger(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// signedInteger returns an integer-like value as int64 or uint64 so fmt
// can print it with integer verbs.
func signedInteger(v any) (any, bool) {
	neg, mag, ok := integerParts(v)
	switch {
	case !ok:
		return nil, false
	case neg:
		return -int64(mag), true
	default:
		return mag, true
	}
}
