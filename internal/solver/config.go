package solver

import (
	"fmt"
	"time"

	"annealer/internal/flowshop"
)

type Config struct {
	// TimeLimit is the wall-clock budget per run; 0 disables it.
	TimeLimit time.Duration `yaml:"time_limit"`
	// MaxIterations bounds a run by iteration count. When both it and
	// TimeLimit are 0, IterationsPerJob * jobs is used.
	MaxIterations    int `yaml:"max_iterations"`
	IterationsPerJob int `yaml:"iterations_per_job"`

	// LimitTemp is the final temperature. The start temperature,
	// TempFactor * initial makespan, is raised to 10 * LimitTemp when lower.
	LimitTemp  float64 `yaml:"limit_temp"`
	TempFactor float64 `yaml:"temp_factor"`

	Neighborhood flowshop.Neighborhood `yaml:"neighborhood"`
	Silent       bool                  `yaml:"silent"`
}

func DefaultConfig() Config {
	return Config{
		TimeLimit:        0,
		MaxIterations:    0,
		IterationsPerJob: 2500,

		LimitTemp:  0.5,
		TempFactor: flowshop.DefaultTempFactor,

		Neighborhood: flowshop.NeighborhoodSwap,
		Silent:       true,
	}
}

func (c Config) Validate() error {
	if c.TimeLimit < 0 {
		return fmt.Errorf("TimeLimit must be >= 0 (got %s)", c.TimeLimit)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("MaxIterations must be >= 0 (got %d)", c.MaxIterations)
	}
	if c.TimeLimit == 0 && c.MaxIterations == 0 && c.IterationsPerJob <= 0 {
		return fmt.Errorf("one of TimeLimit, MaxIterations or IterationsPerJob must be > 0")
	}
	if c.LimitTemp <= 0 {
		return fmt.Errorf("LimitTemp must be > 0 (got %f)", c.LimitTemp)
	}
	if c.TempFactor <= 0 {
		return fmt.Errorf("TempFactor must be > 0 (got %f)", c.TempFactor)
	}
	return c.Neighborhood.Validate()
}

// iterations resolves the iteration bound for an instance with n jobs.
func (c Config) iterations(n int) int {
	if c.MaxIterations > 0 || c.TimeLimit > 0 {
		return c.MaxIterations
	}
	return c.IterationsPerJob * n
}
