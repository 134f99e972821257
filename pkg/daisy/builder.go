package daisy

import (
	"errors"
	"fmt"
	"reflect"
)

// Constructor creates chains over one shared MethodSet.
type Constructor[T any] struct {
	methods   *MethodSet[T]
	transform func(T) T
}

// Build lifts every function entry of ops into a Constructor.
// Non-function entries are ignored. Reserved names, nil functions and
// unsupported signatures fail the whole build; all problems are reported together.
func Build[T any](ops Ops, opts ...Option) (*Constructor[T], error) {
	cfg := newConfig(opts)

	var errs []error
	transform := func(v T) T { return v }
	if cfg.transform != nil {
		fn, ok := cfg.transform.(func(T) T)
		if ok {
			transform = fn
		} else {
			errs = append(errs, fmt.Errorf("%w: %T for %s", ErrTransformType, cfg.transform, reflect.TypeOf((*T)(nil)).Elem()))
		}
	}

	ms, err := lift[T](ops, cfg)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Constructor[T]{methods: ms, transform: transform}, nil
}

// MustBuild is the panic-on-failure variant of Build.
func MustBuild[T any](ops Ops, opts ...Option) *Constructor[T] {
	ctor, err := Build[T](ops, opts...)
	if err != nil {
		panic(err)
	}
	return ctor
}

// New creates a chain over the transformed input.
func (c *Constructor[T]) New(input T) Chain[T] {
	return c.methods.Wrap(c.transform(input))
}

// Func returns New as a plain function.
func (c *Constructor[T]) Func() func(T) Chain[T] {
	return c.New
}

// Methods returns the method set shared by every chain of the Constructor.
func (c *Constructor[T]) Methods() *MethodSet[T] {
	return c.methods
}

// Mode returns the evaluation mode of the chains it creates.
func (c *Constructor[T]) Mode() Mode {
	return c.methods.Mode()
}
