package daisy

import "slices"

// Step is one pending call of a lazy chain: the operation, the method name
// it was registered under and the arguments captured at call time.
type Step[T any] struct {
	Name string
	Op   Op[T]
	Args []any
}

// node is a persistent list cell. Lists only grow by pushing a new cell in
// front of an existing one, so every chain can share its prefix with the
// chain it was derived from.
type node[T any] struct {
	prev  *node[T]
	step  Step[T]
	depth int
}

func (n *node[T]) push(s Step[T]) *node[T] {
	return &node[T]{prev: n, step: s, depth: n.len() + 1}
}

func (n *node[T]) len() int {
	if n == nil {
		return 0
	}
	return n.depth
}

// steps returns the list in call order.
func (n *node[T]) steps() []Step[T] {
	out := make([]Step[T], n.len())
	for cur := n; cur != nil; cur = cur.prev {
		out[cur.depth-1] = cur.step
	}
	return out
}

// Evaluate threads seed through steps in order and returns the final value.
// The first operation error stops evaluation and is returned as is.
// Each operation gets its own copy of the step arguments, so steps can be replayed.
func Evaluate[T any](seed T, steps []Step[T]) (T, error) {
	result, _, err := evaluate(seed, steps)
	return result, err
}

// evaluate is Evaluate that also reports the index of the failed step.
func evaluate[T any](seed T, steps []Step[T]) (T, int, error) {
	result := seed
	for i, s := range steps {
		next, err := s.Op(result, slices.Clone(s.Args)...)
		if err != nil {
			var zero T
			return zero, i, err
		}
		result = next
	}
	return result, -1, nil
}
