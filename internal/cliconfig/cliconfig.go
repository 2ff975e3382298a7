// Package cliconfig turns command line flags and an optional YAML file into a
// game.Config, and points the logger where the config says.
package cliconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli"
)

// Flags are shared by every binary. Values given here win over the config file.
var Flags = []cli.Flag{
	cli.StringFlag{Name: "config, c", Usage: "YAML config file"},
	cli.IntFlag{Name: "width", Usage: "grid width in cells"},
	cli.IntFlag{Name: "height", Usage: "grid height in cells"},
	cli.IntFlag{Name: "cell-size", Usage: "pixels per cell in PNG snapshots"},
	cli.IntFlag{Name: "fps", Usage: "frames per second"},
	cli.IntFlag{Name: "tps", Usage: "simulation ticks per second, at most fps"},
	cli.StringFlag{Name: "name", Usage: "player name stored with high scores"},
	cli.StringFlag{Name: "scores", Usage: "sqlite file for high scores"},
	cli.StringFlag{Name: "autopilot", Usage: "Lua script steering the snake (\"default\" for the built-in one)"},
	cli.StringFlag{Name: "snapshots", Usage: "directory for PNG snapshots"},
	cli.StringFlag{Name: "log-file", Usage: "write logs to this file"},
	cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
}

// Load reads the config file named by --config and applies flag overrides.
// The returned error wraps game.ErrInvalidConfig when the merged values are
// unusable.
func Load(c *cli.Context) (game.Config, error) {
	cfg, err := game.LoadConfig(c.String("config"))
	if err != nil && !errors.Is(err, game.ErrInvalidConfig) {
		return cfg, err
	}

	ints := map[string]*int{
		"width":     &cfg.GridWidth,
		"height":    &cfg.GridHeight,
		"cell-size": &cfg.CellSize,
		"fps":       &cfg.FramesPerSec,
		"tps":       &cfg.TicksPerSecond,
	}
	for name, dst := range ints {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}

	strs := map[string]*string{
		"name":      &cfg.PlayerName,
		"scores":    &cfg.ScoresPath,
		"autopilot": &cfg.AutopilotPath,
		"snapshots": &cfg.SnapshotDir,
		"log-file":  &cfg.LogFile,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	return cfg, cfg.Validate()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging configures the global charm logger. Without a log file the
// output goes to fallback. The returned closer releases the log file.
func SetupLogging(cfg game.Config, fallback io.Writer) (io.Closer, error) {
	level := cfg.LogLevel
	if level == "" {
		level = game.DefaultLogLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
	}

	var out io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		out = f
		closer = f
	}

	log.SetOutput(out)
	log.SetLevel(parsed)
	log.SetReportTimestamp(true)
	return closer, nil
}
