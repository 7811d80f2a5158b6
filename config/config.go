// Package config loads engine settings from flags, the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chess-search/engine"
)

const envPrefix = "CHESS"

const (
	keyConfig          = "config"
	keyTimeLimit       = "time-limit"
	keyQuiescenceDepth = "quiescence-depth"
	keyTableSize       = "table-size"
	keyMaxDepth        = "max-depth"
	keyTrustQuiescence = "trust-quiescence"
	keyLogLevel        = "log-level"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	TimeLimit       time.Duration
	QuiescenceDepth int
	TableSize       int
	MaxDepth        int
	TrustQuiescence bool
	LogLevel        string
}

// NewFlagSet returns a flag set with the engine settings registered. Mains
// add their own flags to it before calling LoadFlags.
func NewFlagSet(name string) *pflag.FlagSet {
	d := engine.DefaultOptions()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(keyConfig, "", "config file (yaml, toml or json)")
	fs.Duration(keyTimeLimit, d.TimeLimit, "time budget per move")
	fs.Int(keyQuiescenceDepth, d.QuiescenceDepth, "quiescence search depth in plies")
	fs.Int(keyTableSize, d.TableSize, "transposition table capacity in entries")
	fs.Int(keyMaxDepth, d.MaxDepth, "stop deepening after this many plies, 0 for no limit")
	fs.Bool(keyTrustQuiescence, d.TrustQuiescence, "adopt quiescence values at the horizon without comparing them to the static score")
	fs.String(keyLogLevel, zerolog.InfoLevel.String(), "trace, debug, info, warn, error or disabled")
	return fs
}

// Load parses args against the engine flags only.
func (c *Config) Load(args []string) error {
	return c.LoadFlags(NewFlagSet("chess-search"), args)
}

// LoadFlags parses args with fs and resolves every setting. Flags win over
// CHESS_* environment variables, which win over the config file.
func (c *Config) LoadFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	c.TimeLimit = v.GetDuration(keyTimeLimit)
	c.QuiescenceDepth = v.GetInt(keyQuiescenceDepth)
	c.TableSize = v.GetInt(keyTableSize)
	c.MaxDepth = v.GetInt(keyMaxDepth)
	c.TrustQuiescence = v.GetBool(keyTrustQuiescence)
	c.LogLevel = v.GetString(keyLogLevel)
	return c.Validate()
}

func (c *Config) Validate() error {
	switch {
	case c.TimeLimit <= 0:
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, keyTimeLimit, c.TimeLimit)
	case c.QuiescenceDepth < 0:
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, keyQuiescenceDepth, c.QuiescenceDepth)
	case c.TableSize < 0:
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, keyTableSize, c.TableSize)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, keyMaxDepth, c.MaxDepth)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, keyLogLevel, err)
	}
	return nil
}

// EngineOptions converts the configuration for engine.NewSession.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		TimeLimit:       c.TimeLimit,
		QuiescenceDepth: c.QuiescenceDepth,
		TableSize:       c.TableSize,
		MaxDepth:        c.MaxDepth,
		TrustQuiescence: c.TrustQuiescence,
	}
}

// ApplyLogLevel sets the global zerolog level.
func (c *Config) ApplyLogLevel() error {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
