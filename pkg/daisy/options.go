package daisy

import (
	"fmt"

	"go.uber.org/zap"
)

// Mode selects how chained calls are evaluated.
type Mode int

const (
	// Eager applies each operation as soon as it is called.
	Eager Mode = iota
	// Lazy records each call and applies the operations on Value.
	Lazy
)

func (m Mode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Lazy:
		return "lazy"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type config struct {
	mode      Mode
	logger    *zap.Logger
	transform any
}

func defaultConfig() config {
	return config{
		mode:   Eager,
		logger: zap.NewNop(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option customizes Build and Lift.
// Option constructors panic on meaningless input.
type Option func(*config)

// WithMode selects the evaluation mode. The default is Eager.
func WithMode(mode Mode) Option {
	if mode != Eager && mode != Lazy {
		panic(fmt.Sprintf("daisy: WithMode(%d)", int(mode)))
	}
	return func(c *config) {
		c.mode = mode
	}
}

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic("daisy: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = logger
	}
}

// WithTransform sets the function applied once to the raw input of every
// chain created by a Constructor. T must match the Constructor's value type,
// otherwise Build fails with ErrTransformType. Lift ignores it.
func WithTransform[T any](fn func(T) T) Option {
	if fn == nil {
		panic("daisy: WithTransform(nil)")
	}
	return func(c *config) {
		c.transform = fn
	}
}
