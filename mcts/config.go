package mcts

// Config holds the knobs for one search. A Config is passed by value into
// New; nothing in this package keeps process-wide mutable defaults.
type Config struct {
	// NumSimulations is the number of select/evaluate/backpropagate cycles
	// run per move decision.
	NumSimulations int
	// PUCT balances exploitation of the mean value against prior-weighted
	// exploration in child selection.
	PUCT float32
	// Temperature reshapes the visit-count policy target: 1 leaves it
	// untouched, values below 1 sharpen it, values near 0 collapse it to a
	// one-hot on the most visited move.
	Temperature float32
	// DirichletAlpha is the concentration of the exploration noise mixed
	// into the root priors.
	DirichletAlpha float64
	// DirichletEpsilon is the fraction of the root priors replaced by noise.
	DirichletEpsilon float32
}

// DefaultConfig mirrors the self-play settings the evaluator is expected to
// be trained with.
func DefaultConfig() Config {
	return Config{
		NumSimulations:   100,
		PUCT:             1.0,
		Temperature:      1.0,
		DirichletAlpha:   0.3,
		DirichletEpsilon: 0.25,
	}
}

func (c Config) IsValid() bool {
	return c.NumSimulations > 0 &&
		c.PUCT > 0 &&
		c.Temperature >= 0 &&
		c.DirichletAlpha > 0 &&
		c.DirichletEpsilon >= 0 && c.DirichletEpsilon <= 1
}
