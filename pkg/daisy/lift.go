package daisy

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Method is an operation lifted into a chain method. It never mutates recv;
// it returns the chain representing recv after the call.
type Method[T any] func(recv Chain[T], args ...any) (Chain[T], error)

// LiftOp lifts op into a Method. On an eager receiver op runs immediately and
// its error is returned right away. On a lazy receiver the call is only
// recorded and op runs when the chain is evaluated.
// A receiver that already failed is returned unchanged with its error.
func LiftOp[T any](name string, op Op[T]) Method[T] {
	return func(recv Chain[T], args ...any) (Chain[T], error) {
		if recv.err != nil {
			return recv, recv.err
		}

		if recv.Mode() == Lazy {
			return recv.withStep(Step[T]{Name: name, Op: op, Args: slices.Clone(args)}), nil
		}

		next, err := op(recv.value, args...)
		if err != nil {
			recv.logger().Debug("operation failed",
				zap.Stringer("chain", recv.id), zap.String("op", name), zap.Error(err))
			return recv.withErr(err), err
		}
		return recv.withValue(next), nil
	}
}

// MethodSet is the read-only table of lifted methods shared by every chain
// created from it.
type MethodSet[T any] struct {
	id      uuid.UUID
	mode    Mode
	logger  *zap.Logger
	methods map[string]Method[T]
}

// Lift lifts every function entry of ops into a MethodSet without building a
// Constructor. WithTransform is ignored.
func Lift[T any](ops Ops, opts ...Option) (*MethodSet[T], error) {
	return lift[T](ops, newConfig(opts))
}

func lift[T any](ops Ops, cfg config) (*MethodSet[T], error) {
	ms := &MethodSet[T]{
		id:      uuid.New(),
		mode:    cfg.mode,
		logger:  cfg.logger,
		methods: make(map[string]Method[T], len(ops)),
	}

	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		entry := ops[name]
		if !isFunc(entry) {
			cfg.logger.Debug("ignoring non-function entry", zap.String("name", name))
			continue
		}
		if err := validateName(name); err != nil {
			errs = append(errs, err)
			continue
		}
		if reflect.ValueOf(entry).IsNil() {
			errs = append(errs, fmt.Errorf("%w: %q is a nil function", ErrSignature, name))
			continue
		}

		op, err := toOp[T](entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", name, err))
			continue
		}
		ms.methods[name] = LiftOp(name, op)
		cfg.logger.Debug("registered operation", zap.String("name", name), zap.Stringer("mode", cfg.mode))
	}

	if err := errors.Join(errs...); err != nil {
		cfg.logger.Warn("invalid operation mapping", zap.Error(err))
		return nil, err
	}
	return ms, nil
}

// Wrap creates a chain holding v as is.
func (ms *MethodSet[T]) Wrap(v T) Chain[T] {
	return Chain[T]{id: uuid.New(), methods: ms, value: v}
}

// Apply calls the method registered under name with recv as receiver.
func (ms *MethodSet[T]) Apply(recv Chain[T], name string, args ...any) (Chain[T], error) {
	if recv.err != nil {
		return recv, recv.err
	}

	m, ok := ms.lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownMethod, name)
		return recv.withErr(err), err
	}
	return m(recv, args...)
}

func (ms *MethodSet[T]) lookup(name string) (Method[T], bool) {
	if ms == nil {
		return nil, false
	}
	m, ok := ms.methods[name]
	return m, ok
}

// Has reports whether name is a method of the set.
func (ms *MethodSet[T]) Has(name string) bool {
	_, ok := ms.lookup(name)
	return ok
}

// Names returns the sorted method names.
func (ms *MethodSet[T]) Names() []string {
	if ms == nil {
		return nil
	}
	names := make([]string, 0, len(ms.methods))
	for name := range ms.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of methods in the set.
func (ms *MethodSet[T]) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.methods)
}

// Mode returns the evaluation mode of chains created from the set.
func (ms *MethodSet[T]) Mode() Mode {
	if ms == nil {
		return Eager
	}
	return ms.mode
}

// ID identifies the method set.
func (ms *MethodSet[T]) ID() uuid.UUID {
	if ms == nil {
		return uuid.Nil
	}
	return ms.id
}
