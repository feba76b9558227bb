// Package numeric holds small numeric helpers shared by the model code.
package numeric

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strconv"
)

// Number is the set of built-in ordered numeric types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// NonNegative reports whether v >= 0. NaN is not non-negative.
func NonNegative[T Number](v T) bool {
	return v >= 0
}

// maxDeref bounds how many pointer levels IsPositive follows. A pointer
// type can refer to itself, so the chain is not guaranteed to end.
const maxDeref = 8

// IsPositive reports whether v is zero or greater.
//
// Values that cannot be ordered against zero (nil, strings, structs,
// complex numbers, malformed json.Number) count as positive: callers use
// this where assuming the forward direction is the safe default. NaN
// compares false and is reported as not positive. Pointers are followed
// up to maxDeref levels; a deeper or cyclic chain counts as positive.
func IsPositive(v any) bool {
	for range maxDeref + 1 {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || isBig(v) {
			return sign(v, rv)
		}
		if rv.IsNil() {
			return true
		}
		v = rv.Elem().Interface()
	}
	return true
}

func isBig(v any) bool {
	switch v.(type) {
	case *big.Int, *big.Float, *big.Rat:
		return true
	}
	return false
}

// sign handles every non-pointer value plus the math/big pointer types.
func sign(v any, rv reflect.Value) bool {
	switch n := v.(type) {
	case nil:
		return true
	case int:
		return n >= 0
	case int64:
		return n >= 0
	case float64:
		return n >= 0
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return true
		}
		return f >= 0
	case *big.Int:
		return n == nil || n.Sign() >= 0
	case *big.Float:
		return n == nil || n.Sign() >= 0
	case *big.Rat:
		return n == nil || n.Sign() >= 0
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		return rv.Float() >= 0
	}
	return true
}
