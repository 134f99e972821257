package daisy

import "fmt"

// Arg returns the i-th captured argument as A.
// Returns an error if the index is out of range or the type doesn't match.
func Arg[A any](args []any, i int) (A, error) {
	var zero A
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("%w: %d of %d", ErrArgIndex, i, len(args))
	}

	val, ok := args[i].(A)
	if !ok {
		return zero, fmt.Errorf("%w: argument %d is %T", ErrArgType, i, args[i])
	}
	return val, nil
}

// ArgOr is like Arg but falls back to def instead of failing.
func ArgOr[A any](args []any, i int, def A) A {
	val, err := Arg[A](args, i)
	if err != nil {
		return def
	}
	return val
}

// MustArg is the panic-on-failure variant of Arg.
func MustArg[A any](args []any, i int) A {
	val, err := Arg[A](args, i)
	if err != nil {
		panic(err)
	}
	return val
}
