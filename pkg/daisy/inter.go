package daisy

// Valuer is anything that can produce a final value or the error that
// prevented it.
type Valuer[T any] interface {
	// Value returns the final value or the error that prevented it
	Value() (T, error)
}

// Caller defines the fluent side of a chain
type Caller[T any] interface {
	Valuer[T]
	// Call returns the chain after invoking the named method
	Call(name string, args ...any) Chain[T]
	// Invoke is Call that also returns the error known at call time
	Invoke(name string, args ...any) (Chain[T], error)
}

var (
	_ Valuer[int] = Chain[int]{}
	_ Caller[int] = Chain[int]{}
)
