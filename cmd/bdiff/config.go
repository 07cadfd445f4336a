package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/bdiff/internal/autodiff"
)

// config holds the settings shared by every command. A YAML file provides the
// base values and flags set on the command line override them.
type config struct {
	Order   int  `yaml:"order"`
	Workers int  `yaml:"workers"`
	Verbose bool `yaml:"verbose"`
}

func defaultConfig() config {
	return config{Order: 4}
}

// loadConfig reads a YAML config file. Keys missing from the file keep their
// default values.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// override copies every flag the user set explicitly into cfg.
func (c *config) override(flags *pflag.FlagSet, set config) {
	if flags.Changed("order") {
		c.Order = set.Order
	}
	if flags.Changed("workers") {
		c.Workers = set.Workers
	}
	if flags.Changed("verbose") {
		c.Verbose = set.Verbose
	}
}

func (c config) validate() error {
	if err := (autodiff.Config{Order: c.Order}).Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid config: workers %d must not be negative", c.Workers)
	}
	return nil
}

// logger builds a development logger at debug level when verbose, and a
// production logger that only reports warnings otherwise.
func (c config) logger() (*zap.Logger, error) {
	if c.Verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zc.Build()
}
