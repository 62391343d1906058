// Package config loads simulation settings from an optional HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/wcowley99/utx/internal/payout"
	"github.com/wcowley99/utx/internal/ranker"
	"github.com/wcowley99/utx/poker"
)

const (
	DefaultTrials   = 1000
	DefaultSeed     = 1
	DefaultLogLevel = "info"
)

// Config is the resolved configuration for one run.
type Config struct {
	Trials   int
	Seed     int64
	Workers  int // 0 means one per CPU
	Ranker   string
	Classes  []string // empty means all starting hands
	LogLevel string
	Paytable payout.Paytable
}

// fileConfig mirrors the HCL layout. Pointer fields distinguish an absent
// attribute from an explicit zero.
type fileConfig struct {
	Simulation *simulationBlock `hcl:"simulation,block"`
	Paytable   *paytableBlock   `hcl:"paytable,block"`
}

type simulationBlock struct {
	Trials   *int     `hcl:"trials,optional"`
	Seed     *int64   `hcl:"seed,optional"`
	Workers  *int     `hcl:"workers,optional"`
	Ranker   *string  `hcl:"ranker,optional"`
	Classes  []string `hcl:"classes,optional"`
	LogLevel *string  `hcl:"log_level,optional"`
}

type paytableBlock struct {
	RoyalFlush    *float64 `hcl:"royal_flush,optional"`
	StraightFlush *float64 `hcl:"straight_flush,optional"`
	FourOfAKind   *float64 `hcl:"four_of_a_kind,optional"`
	FullHouse     *float64 `hcl:"full_house,optional"`
	Flush         *float64 `hcl:"flush,optional"`
	Straight      *float64 `hcl:"straight,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Trials:   DefaultTrials,
		Seed:     DefaultSeed,
		Ranker:   ranker.Default,
		LogLevel: DefaultLogLevel,
		Paytable: payout.DefaultPaytable(),
	}
}

// Load reads filename on top of the defaults. A missing file yields the
// defaults unchanged; an empty filename is treated the same way.
func Load(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.apply(fc)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

func (c *Config) apply(fc fileConfig) {
	if s := fc.Simulation; s != nil {
		setIf(&c.Trials, s.Trials)
		setIf(&c.Seed, s.Seed)
		setIf(&c.Workers, s.Workers)
		setIf(&c.Ranker, s.Ranker)
		setIf(&c.LogLevel, s.LogLevel)
		if len(s.Classes) > 0 {
			c.Classes = s.Classes
		}
	}
	if p := fc.Paytable; p != nil {
		setIf(&c.Paytable.StraightFlush, p.StraightFlush)
		// The royal tier follows the straight flush unless set explicitly.
		c.Paytable.RoyalFlush = c.Paytable.StraightFlush
		setIf(&c.Paytable.RoyalFlush, p.RoyalFlush)
		setIf(&c.Paytable.FourOfAKind, p.FourOfAKind)
		setIf(&c.Paytable.FullHouse, p.FullHouse)
		setIf(&c.Paytable.Flush, p.Flush)
		setIf(&c.Paytable.Straight, p.Straight)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := ranker.New(c.Ranker); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if _, err := c.StartingHands(); err != nil {
		return err
	}
	return c.Paytable.Validate()
}

// StartingHands parses the class filter. It returns nil when every class
// should run.
func (c *Config) StartingHands() ([]poker.StartingHand, error) {
	if len(c.Classes) == 0 {
		return nil, nil
	}
	hands := make([]poker.StartingHand, 0, len(c.Classes))
	seen := make(map[poker.StartingHand]bool, len(c.Classes))
	for _, s := range c.Classes {
		sh, err := poker.ParseStartingHand(s)
		if err != nil {
			return nil, err
		}
		if seen[sh] {
			return nil, fmt.Errorf("starting hand %s listed twice", sh)
		}
		seen[sh] = true
		hands = append(hands, sh)
	}
	return hands, nil
}

// String summarises the settings for log lines.
func (c *Config) String() string {
	classes := "all"
	if len(c.Classes) > 0 {
		classes = strings.Join(c.Classes, ",")
	}
	return fmt.Sprintf("trials=%d seed=%d workers=%d ranker=%s classes=%s",
		c.Trials, c.Seed, c.Workers, c.Ranker, classes)
}
