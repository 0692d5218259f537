package arrange

import "log/slog"

// Default geometry tolerances.
const (
	DefaultSnap    = 0.5
	DefaultQuantum = 1e-6
	DefaultEpsilon = 1e-9
)

// Config holds the tunable geometry constants of an Engine.
type Config struct {
	// Snap is the grid step input endpoints are rounded to.
	Snap float64
	// Quantum is the resolution computed intersection points are rounded to
	// before they are keyed.
	Quantum float64
	// Epsilon is the tolerance for parameter ranges, collinearity, on-edge
	// tests and vertex merging.
	Epsilon float64

	logger *slog.Logger
}

// DefaultConfig returns the half-grid configuration.
func DefaultConfig() Config {
	return Config{
		Snap:    DefaultSnap,
		Quantum: DefaultQuantum,
		Epsilon: DefaultEpsilon,
	}
}

// Option configures an Engine.
//
// Example:
//
//	eng := arrange.New(arrange.WithSnap(1), arrange.WithEpsilon(1e-7))
type Option func(*Config)

// WithSnap sets the endpoint snapping step. Zero or negative keeps the default.
func WithSnap(step float64) Option {
	return func(c *Config) {
		if step > 0 {
			c.Snap = step
		}
	}
}

// WithQuantum sets the intersection rounding resolution.
func WithQuantum(q float64) Option {
	return func(c *Config) {
		if q > 0 {
			c.Quantum = q
		}
	}
}

// WithEpsilon sets the geometric tolerance.
func WithEpsilon(eps float64) Option {
	return func(c *Config) {
		if eps > 0 {
			c.Epsilon = eps
		}
	}
}

// WithLogger routes this engine's diagnostics to l instead of the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

func (c Config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}
