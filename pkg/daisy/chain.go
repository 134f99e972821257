package daisy

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Chain is an immutable chain instance. Eager chains hold the computed
// value; lazy chains hold the seed and the list of pending steps.
// Every call returns a new Chain, so any chain can be branched safely.
type Chain[T any] struct {
	id      uuid.UUID
	methods *MethodSet[T]
	value   T        // eager: current value, lazy: seed
	tail    *node[T] // lazy only
	applied int
	err     error
}

func (c Chain[T]) withValue(v T) Chain[T] {
	return Chain[T]{id: uuid.New(), methods: c.methods, value: v, applied: c.applied + 1}
}

func (c Chain[T]) withStep(s Step[T]) Chain[T] {
	return Chain[T]{id: uuid.New(), methods: c.methods, value: c.value, tail: c.tail.push(s)}
}

func (c Chain[T]) withErr(err error) Chain[T] {
	next := c
	next.id = uuid.New()
	next.err = err
	return next
}

func (c Chain[T]) logger() *zap.Logger {
	if c.methods == nil || c.methods.logger == nil {
		return zap.NewNop()
	}
	return c.methods.logger
}

// Call invokes the method registered under name and returns the next chain.
// Errors ride on the returned chain and surface through Err or Value.
func (c Chain[T]) Call(name string, args ...any) Chain[T] {
	next, _ := c.Invoke(name, args...)
	return next
}

// Invoke is Call that also returns the error known at call time: operation
// errors in eager mode, unknown method names in both modes.
func (c Chain[T]) Invoke(name string, args ...any) (Chain[T], error) {
	return c.methods.Apply(c, name, args...)
}

// Value returns the final value of the chain. Lazy chains replay their
// pending steps in call order; evaluating the same chain again replays them again.
func (c Chain[T]) Value() (T, error) {
	var zero T
	if c.err != nil {
		return zero, c.err
	}
	if c.Mode() == Eager {
		return c.value, nil
	}

	steps := c.tail.steps()
	log := c.logger()
	log.Debug("evaluating chain", zap.Stringer("chain", c.id), zap.Int("steps", len(steps)))

	result, failed, err := evaluate(c.value, steps)
	if err != nil {
		log.Debug("operation failed",
			zap.Stringer("chain", c.id),
			zap.String("op", steps[failed].Name),
			zap.Int("step", failed),
			zap.Error(err))
		return zero, err
	}
	return result, nil
}

// MustValue is the panic-on-failure variant of Value.
func (c Chain[T]) MustValue() T {
	v, err := c.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Err returns the error known without evaluating the chain.
// A lazy chain whose operation would fail reports nil until Value is called.
func (c Chain[T]) Err() error {
	return c.err
}

// Mode returns the evaluation mode of the chain.
func (c Chain[T]) Mode() Mode {
	return c.methods.Mode()
}

// ID identifies this chain instance. Each call yields a chain with a new ID.
func (c Chain[T]) ID() uuid.UUID {
	return c.id
}

// Methods returns the method set shared by every chain of the same Constructor.
func (c Chain[T]) Methods() *MethodSet[T] {
	return c.methods
}

// Len returns the number of calls applied (eager) or pending (lazy).
func (c Chain[T]) Len() int {
	if c.Mode() == Lazy {
		return c.tail.len()
	}
	return c.applied
}

// Steps returns a copy of the pending steps of a lazy chain in call order.
// Eager chains have none.
func (c Chain[T]) Steps() []Step[T] {
	if c.Mode() != Lazy {
		return nil
	}
	steps := c.tail.steps()
	for i := range steps {
		steps[i].Args = slices.Clone(steps[i].Args)
	}
	return steps
}

// Finally collapses a chain into a final value using onSuccess or onFailure.
func Finally[T, U any](v Valuer[T], onSuccess func(T) U, onFailure func(error) U) U {
	res, err := v.Value()
	if err != nil {
		return onFailure(err)
	}
	return onSuccess(res)
}
