package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

// Load builds the runtime settings. Later sources win: defaults, the YAML
// file (-config, or ./platformer.yaml when present), PLATFORMER_* environment
// variables, then flags.
func Load(args []string) (*Runtime, error) {
	cfg := Default()

	fs := flag.NewFlagSet("platformer", flag.ContinueOnError)
	path := fs.String("config", "", "path to a YAML config file")
	level := fs.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := fs.Bool("debug", false, "enable the debug overlay and debug logging")
	logFile := fs.String("log", "", "also write logs to this file")
	hot := fs.Bool("hot", false, "reload prefabs from disk when they change")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	file := *path
	if file == "" {
		if _, err := os.Stat(defaultFile); err == nil {
			file = defaultFile
		}
	}
	if file != "" {
		if err := loadFile(cfg, file); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if *level != "" {
		cfg.Game.Level = *level
	}
	if *debug {
		cfg.Game.Debug = true
		cfg.Logging.Level = "debug"
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}
	if *hot {
		cfg.Game.HotReload = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const defaultFile = "platformer.yaml"

func loadFile(cfg *Runtime, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (r *Runtime) Validate() error {
	if r.Window.Width <= 0 || r.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, r.Window.Width, r.Window.Height)
	}
	if r.Game.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, r.Game.TPS)
	}
	if r.Game.Level == "" {
		return fmt.Errorf("%w: empty level name", ErrInvalid)
	}
	return nil
}
