package daisy_test

import (
	"errors"

	"github.com/ib-77/daisychain/pkg/daisy"
)

var errBoom = errors.New("boom")

func arith() daisy.Ops {
	return daisy.Ops{
		"identity":      func(n int) int { return n },
		"x":             func(n, f int) int { return n * f },
		"mod":           func(n, m int) int { return n % m },
		"state1":        true,
		"state2":        false,
		"allowedStates": []string{"state1", "state2"},
	}
}

// counting returns ops whose calls are counted in *calls.
func counting(calls *int) daisy.Ops {
	return daisy.Ops{
		"inc": func(n int) int {
			*calls++
			return n + 1
		},
		"boom": func(n int) (int, error) {
			*calls++
			return 0, errBoom
		},
	}
}
