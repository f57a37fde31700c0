package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

import (
	"github.com/timtadh/sapriori/stats"
)

const (
	DefaultSampleSize      = 1000
	DefaultConfidenceLevel = .95
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ErrInvalidConfiguration is the error every rejected configuration wraps.
var ErrInvalidConfiguration = fmt.Errorf("invalid configuration")

// InvalidConfiguration describes why a configuration was rejected.
type InvalidConfiguration struct {
	Reasons []string
}

func (e *InvalidConfiguration) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidConfiguration, strings.Join(e.Reasons, "; "))
}

func (e *InvalidConfiguration) Unwrap() error {
	return ErrInvalidConfiguration
}

func Invalid(format string, args ...interface{}) error {
	return &InvalidConfiguration{Reasons: []string{fmt.Sprintf(format, args...)}}
}

type Config struct {
	// MinSupport is the fraction of all transactions an itemset must occur
	// in to be frequent.
	MinSupport float64 `yaml:"min_support" validate:"gt=0,lte=1"`
	// SampleSize is the number of active transactions the estimator draws.
	// It is capped at the number of active transactions.
	SampleSize int `yaml:"sample_size" validate:"gt=0"`
	// ConfidenceLevel selects the estimator z-score when Z is zero.
	ConfidenceLevel float64 `yaml:"confidence_level" validate:"gt=0,lt=1"`
	// Z overrides the z-score derived from ConfidenceLevel when > 0.
	Z float64 `yaml:"z" validate:"gte=0"`
	// Verify disables estimation based pruning. The result is then complete.
	Verify bool `yaml:"verify"`
	// MaxLevel stops mining after the given itemset size. 0 is unlimited.
	MaxLevel int `yaml:"max_level" validate:"gte=0"`
	// Parallelism is the worker count: 0 is 1, -1 is one per cpu.
	Parallelism int `yaml:"parallelism" validate:"gte=-1"`
	// Seed seeds the sampling rng. 0 picks a random seed.
	Seed   int64  `yaml:"seed"`
	Output string `yaml:"output"`
	Cache  string `yaml:"cache"`
}

func Default() *Config {
	return &Config{
		SampleSize:      DefaultSampleSize,
		ConfidenceLevel: DefaultConfidenceLevel,
	}
}

// Load reads a yaml configuration over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, Invalid("could not parse %v: %v", path, err)
	}
	return c, nil
}

func (c *Config) Copy() *Config {
	return &Config{
		MinSupport:      c.MinSupport,
		SampleSize:      c.SampleSize,
		ConfidenceLevel: c.ConfidenceLevel,
		Z:               c.Z,
		Verify:          c.Verify,
		MaxLevel:        c.MaxLevel,
		Parallelism:     c.Parallelism,
		Seed:            c.Seed,
		Output:          c.Output,
		Cache:           c.Cache,
	}
}

// Validate returns an *InvalidConfiguration listing every problem found.
func (c *Config) Validate() error {
	reasons := make([]string, 0, 2)
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				reasons = append(reasons,
					fmt.Sprintf("%v = %v must satisfy %v %v", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
			}
		} else {
			reasons = append(reasons, err.Error())
		}
	}
	if len(reasons) == 0 {
		if _, err := c.ZScore(); err != nil {
			reasons = append(reasons, err.(*InvalidConfiguration).Reasons...)
		}
	}
	if len(reasons) > 0 {
		return &InvalidConfiguration{Reasons: reasons}
	}
	return nil
}

// ZScore is Z when set and otherwise the tabulated z-score of
// ConfidenceLevel.
func (c *Config) ZScore() (float64, error) {
	if c.Z > 0 {
		return c.Z, nil
	}
	z, ok := stats.ZScore(c.ConfidenceLevel)
	if !ok {
		return 0, Invalid("no z-score is known for confidence level %v, supply Z", c.ConfidenceLevel)
	}
	return z, nil
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

// RandomSeed is Seed, or a fresh random seed when Seed is 0.
func (c *Config) RandomSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return stats.Seed()
}

// RunID names the files of one run so runs sharing a cache do not collide.
func (c *Config) RunID() string {
	return uuid.New().String()
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}
