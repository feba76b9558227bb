package frozen

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnsupported is matched by every *UnsupportedError via errors.Is.
var ErrUnsupported = errors.New("unsupported mutation")

// ErrKeyNotFound is returned by Pop, Delete and PopItem on a missing key or
// empty mapping.
var ErrKeyNotFound = errors.New("key not found")

// UnsupportedError is returned when a mutation is attempted on a mapping
// that does not implement MutableMapping.
type UnsupportedError struct {
	Op   string // "item assignment", "pop", ...
	Type string // concrete type name without type parameters
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("'%s' object does not support %s", e.Type, e.Op)
}

// Is reports ErrUnsupported as a match.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// IsUnsupported reports whether err is an unsupported-mutation error.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// UnhashableError reports a value that has no canonical form.
type UnhashableError struct {
	Key string
	Err error
}

func (e *UnhashableError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("unhashable value: %v", e.Err)
	}
	return fmt.Sprintf("unhashable value for key %q: %v", e.Key, e.Err)
}

func (e *UnhashableError) Unwrap() error {
	return e.Err
}

func unsupported(m any, op string) *UnsupportedError {
	name := "<nil>"
	if t := reflect.TypeOf(m); t != nil {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		name, _, _ = strings.Cut(t.Name(), "[")
	}
	return &UnsupportedError{Op: op, Type: name}
}
