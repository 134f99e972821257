package daisy

import "errors"

var (
	// ErrReservedName is returned by Build when an operation uses a name
	// reserved for terminal accessors.
	ErrReservedName = errors.New("reserved operation name")
	// ErrSignature is returned by Build when a function entry can neither
	// accept nor return the chain value type.
	ErrSignature = errors.New("unsupported operation signature")
	// ErrTransformType is returned by Build when WithTransform was given a
	// function for a different value type.
	ErrTransformType = errors.New("initial transform has wrong type")
	// ErrUnknownMethod is returned when a chain is asked to call a name that
	// is not in its method set.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrArity is returned when captured arguments do not fit the operation.
	ErrArity = errors.New("wrong number of arguments")
	// ErrArgType is returned when a captured argument cannot be coerced to
	// the parameter type of the operation.
	ErrArgType = errors.New("argument type mismatch")
	// ErrArgIndex is returned by Arg when the index is out of range.
	ErrArgIndex = errors.New("argument index out of range")
)
