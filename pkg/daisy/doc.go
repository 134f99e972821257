// Package daisy builds fluent, chainable wrappers ("daisychains") out of a
// map of plain, stateless functions.
//
// Build lifts every function of an Ops map into a shared MethodSet and
// returns a Constructor. Constructor.New wraps an initial value in a Chain;
// Call invokes an operation by name and returns a new Chain; Value returns
// the result.
//
//	ctor := daisy.MustBuild[int](daisy.Ops{
//		"x":   func(n, f int) int { return n * f },
//		"mod": func(n, m int) int { return n % m },
//	})
//	v, err := ctor.New(10).Call("x", 10).Call("x", 10).Call("mod", 3).Value() // 1, nil
//
// Two evaluation modes are available:
// - Eager (default): each call applies its operation immediately. Operation
// errors are returned by Invoke and recorded on the returned chain.
// - Lazy (WithMode(Lazy)): each call only records a Step. Operations run, in
// call order, when Value is called, and operation errors surface there.
//
// Chains are never mutated, so calling two methods on the same intermediate
// chain yields two independent continuations.
//
// Key operations:
// - Build/MustBuild: create a Constructor from Ops
// - Lift/LiftOp: lift a whole map or a single Op without a Constructor
// - Call/Invoke: chain a method by name
// - Value/MustValue/Finally: evaluate the chain
// - Evaluate: replay a step sequence
// - Arg/ArgOr/MustArg: typed access to captured arguments inside an Op
package daisy
