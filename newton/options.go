package newton

import (
	"github.com/govalues/fixed"
	"go.uber.org/zap"
)

// DefaultMaxIterations is the iteration cap used unless [WithMaxIterations]
// is given.
const DefaultMaxIterations = 100

// Step describes one completed iteration.
type Step struct {
	Iteration int             // 1-based iteration number
	X         []fixed.Decimal // iterate after the step
}

// Option configures a solver call.
type Option func(*config)

type config struct {
	maxIter  int
	policy   Policy
	logger   *zap.Logger
	observer func(Step)
	parallel bool
}

func newConfig(opts []Option) *config {
	c := &config{
		maxIter: DefaultMaxIterations,
		policy:  StringPolicy{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMaxIterations sets the iteration cap.
// Values less than 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithPolicy sets the convergence policy, [StringPolicy] by default.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithLogger sets the logger, which receives every iterate at debug level
// and the outcome at info level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a function called after every iteration.
// The observer must not modify the iterate.
func WithObserver(fn func(Step)) Option {
	return func(c *config) {
		c.observer = fn
	}
}

// WithParallel makes [Solve] evaluate the columns of the Jacobian
// concurrently, one goroutine per unknown.
func WithParallel(parallel bool) Option {
	return func(c *config) {
		c.parallel = parallel
	}
}

func (c *config) observe(i int, x []fixed.Decimal) {
	if ce := c.logger.Check(zap.DebugLevel, "newton iteration"); ce != nil {
		ce.Write(zap.Int("iteration", i), zap.Strings("x", render(x)))
	}
	if c.observer != nil {
		c.observer(Step{Iteration: i, X: x})
	}
}

func render(x []fixed.Decimal) []string {
	s := make([]string, len(x))
	for i := range x {
		s[i] = x[i].String()
	}
	return s
}
