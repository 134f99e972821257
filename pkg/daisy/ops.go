package daisy

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Op is a stateless transformation: it receives the current chain value and
// the arguments captured by the chained call, and returns the next value.
type Op[T any] func(value T, args ...any) (T, error)

// Ops maps method names to operations. Entries that are not functions are
// ignored, so the same map may also hold constants.
type Ops map[string]any

var reservedNames = []string{"value", "valueof", "run", "constructor"}

func isReserved(name string) bool {
	lower := strings.ToLower(name)
	for _, r := range reservedNames {
		if lower == r {
			return true
		}
	}
	return false
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// Callable returns the sorted names of the entries in ops that are functions.
func Callable(ops Ops) []string {
	names := make([]string, 0, len(ops))
	for name, v := range ops {
		if isFunc(v) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// toOp normalizes a function entry into an Op. Common shapes are wrapped
// directly, everything else goes through reflection.
func toOp[T any](fn any) (Op[T], error) {
	switch f := fn.(type) {
	case Op[T]:
		return f, nil
	case func(T, ...any) (T, error):
		return f, nil
	case func(T, ...any) T:
		return func(v T, args ...any) (T, error) {
			return f(v, args...), nil
		}, nil
	case func(T) T:
		return func(v T, args ...any) (T, error) {
			if len(args) > 0 {
				var zero T
				return zero, fmt.Errorf("%w: want 0, got %d", ErrArity, len(args))
			}
			return f(v), nil
		}, nil
	case func(T) (T, error):
		return func(v T, args ...any) (T, error) {
			if len(args) > 0 {
				var zero T
				return zero, fmt.Errorf("%w: want 0, got %d", ErrArity, len(args))
			}
			return f(v)
		}, nil
	}
	return reflectOp[T](reflect.ValueOf(fn))
}

func validateName(name string) error {
	if name == "" || isReserved(name) {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}
