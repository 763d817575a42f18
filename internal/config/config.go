// Package config loads gridworks.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "gridworks.toml"

type Config struct {
	LogLevel  string    `toml:"log_level"`
	Warehouse Warehouse `toml:"warehouse"`
	Maze      Maze      `toml:"maze"`
	Computer  Computer  `toml:"computer"`
	Robots    Robots    `toml:"robots"`
}

type Warehouse struct {
	Wide bool   `toml:"wide"`
	Dump string `toml:"dump"`
}

type Maze struct {
	StepCost int    `toml:"step_cost"`
	TurnCost int    `toml:"turn_cost"`
	Dump     string `toml:"dump"`
}

type Computer struct {
	Trace bool `toml:"trace"`
}

type Robots struct {
	Width   int `toml:"width"`
	Height  int `toml:"height"`
	Seconds int `toml:"seconds"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Maze: Maze{
			StepCost: 1,
			TurnCost: 1001,
		},
		Robots: Robots{
			Width:   101,
			Height:  103,
			Seconds: 100,
		},
	}
}

// Load decodes path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Maze.StepCost < 0 || c.Maze.TurnCost < 0 {
		return fmt.Errorf("maze costs must be non-negative, got step=%d turn=%d", c.Maze.StepCost, c.Maze.TurnCost)
	}
	if c.Robots.Width < 1 || c.Robots.Height < 1 {
		return fmt.Errorf("robots room must be at least 1x1, got %dx%d", c.Robots.Width, c.Robots.Height)
	}
	if c.Robots.Seconds < 0 {
		return fmt.Errorf("robots seconds must be non-negative, got %d", c.Robots.Seconds)
	}
	return nil
}
