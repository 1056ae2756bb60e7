// Package config holds the run configuration. Everything has a fixed
// reference default; overrides come from POOLORNOT_* environment
// variables (notably POOLORNOT_SEED, so runs are reproducible).
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Seed drives every deviate source in the program.
	Seed uint64
	// DataN is the fixed dataset length, constant across the whole run.
	DataN int
	// Quadrature grid sizes: means, sigmas (via precision), mixing
	// weights.
	CDFGaussN int
	CDFGammaN int
	CDFJBetaN int
	// SampleIterations is the Monte Carlo iteration count per estimate.
	SampleIterations int
	// Threads for the integrators' worker pools.
	Threads int
	// Trials per ground-truth model; the CLI positional argument
	// overrides this.
	Trials int
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("seed", 42)
	v.SetDefault("data-n", 40)
	v.SetDefault("cdf-gauss-n", 20)
	v.SetDefault("cdf-gamma-n", 10)
	v.SetDefault("cdf-jbeta-n", 40)
	v.SetDefault("sample-iterations", 2_000_000)
	v.SetDefault("threads", max(1, runtime.NumCPU()))
	v.SetDefault("trials", 10)

	v.SetEnvPrefix("poolornot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c := &Config{
		Seed:             v.GetUint64("seed"),
		DataN:            v.GetInt("data-n"),
		CDFGaussN:        v.GetInt("cdf-gauss-n"),
		CDFGammaN:        v.GetInt("cdf-gamma-n"),
		CDFJBetaN:        v.GetInt("cdf-jbeta-n"),
		SampleIterations: v.GetInt("sample-iterations"),
		Threads:          v.GetInt("threads"),
		Trials:           v.GetInt("trials"),
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.DataN <= 0 {
		return fmt.Errorf("config: data-n must be positive, got %d", c.DataN)
	}
	if c.CDFGaussN <= 0 || c.CDFGammaN <= 0 || c.CDFJBetaN <= 0 {
		return fmt.Errorf("config: grid sizes must be positive, got %d/%d/%d",
			c.CDFGaussN, c.CDFGammaN, c.CDFJBetaN)
	}
	if c.SampleIterations <= 0 {
		return fmt.Errorf("config: sample-iterations must be positive, got %d", c.SampleIterations)
	}
	if c.Threads <= 0 {
		return fmt.Errorf("config: threads must be positive, got %d", c.Threads)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("config: trials must be positive, got %d", c.Trials)
	}
	return nil
}
