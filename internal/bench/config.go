package bench

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"annealer/internal/solver"
)

var ErrConfig = errors.New("bench: invalid config")

// Config is the benchmark description, usually loaded from YAML.
type Config struct {
	Out string `yaml:"out"`
	// Pairs lists cases as "<jobs>x<machines>", e.g. "50x10".
	Pairs []string `yaml:"pairs"`
	// Algos lists neighborhoods to compare: "swap", "insert".
	Algos         []string      `yaml:"algos"`
	Runs          int           `yaml:"runs"`
	Seed          int64         `yaml:"seed"`
	InstanceSeed  int64         `yaml:"instance_seed"`
	PerRunTimeout time.Duration `yaml:"per_run_timeout"`
	Workers       int           `yaml:"workers"`

	Solver solver.Config `yaml:"solver"`
}

func DefaultConfig() Config {
	return Config{
		Out:          "artifacts/results.csv",
		Pairs:        []string{"20x5", "50x10", "100x20"},
		Algos:        []string{"swap", "insert"},
		Runs:         30,
		Seed:         1000,
		InstanceSeed: 777,
		Solver:       solver.DefaultConfig(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("%w: runs must be > 0 (got %d)", ErrConfig, c.Runs)
	}
	if c.PerRunTimeout < 0 {
		return fmt.Errorf("%w: per_run_timeout must be >= 0 (got %s)", ErrConfig, c.PerRunTimeout)
	}
	if len(c.Algos) == 0 {
		return fmt.Errorf("%w: no algos selected", ErrConfig)
	}
	if _, err := c.Cases(); err != nil {
		return err
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("%w: solver: %v", ErrConfig, err)
	}
	return nil
}

// Cases parses Pairs. Instance seeds are derived from InstanceSeed, the pair
// index and its dimensions so that every case gets a distinct instance.
func (c Config) Cases() ([]Case, error) {
	cases := make([]Case, 0, len(c.Pairs))
	for i, p := range c.Pairs {
		jm := strings.Split(strings.TrimSpace(p), "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("%w: pair %q, expected e.g. 50x10", ErrConfig, p)
		}
		jobs, err := strconv.Atoi(strings.TrimSpace(jm[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: pair %q: jobs: %v", ErrConfig, p, err)
		}
		machines, err := strconv.Atoi(strings.TrimSpace(jm[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: pair %q: machines: %v", ErrConfig, p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("%w: pair %q: jobs and machines must be > 0", ErrConfig, p)
		}

		seed := c.InstanceSeed + int64(i)*10_000 + int64(jobs)*100 + int64(machines)
		cases = append(cases, Case{Jobs: jobs, Machines: machines, InstanceSeed: seed})
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: no pairs given", ErrConfig)
	}
	return cases, nil
}
