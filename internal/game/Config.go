package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGridWidth      = 20
	DefaultGridHeight     = 20
	DefaultCellSize       = 30
	DefaultFramesPerSec   = 60
	DefaultTicksPerSecond = 3
	DefaultPlayerName     = "anonymous"
	DefaultLogLevel       = "info"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is read once at startup; nothing reconfigures a running game.
type Config struct {
	GridWidth      int    `yaml:"grid_width"`
	GridHeight     int    `yaml:"grid_height"`
	CellSize       int    `yaml:"cell_size"`
	FramesPerSec   int    `yaml:"fps"`
	TicksPerSecond int    `yaml:"tps"`
	PlayerName     string `yaml:"player_name"`
	ScoresPath     string `yaml:"scores_path"`
	AutopilotPath  string `yaml:"autopilot_path"`
	SnapshotDir    string `yaml:"snapshot_dir"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
}

func DefaultConfig() Config {
	name := os.Getenv("USER")
	if name == "" {
		name = DefaultPlayerName
	}

	return Config{
		GridWidth:      DefaultGridWidth,
		GridHeight:     DefaultGridHeight,
		CellSize:       DefaultCellSize,
		FramesPerSec:   DefaultFramesPerSec,
		TicksPerSecond: DefaultTicksPerSecond,
		PlayerName:     name,
		LogLevel:       DefaultLogLevel,
	}
}

// LoadConfig overlays the YAML file at path on top of DefaultConfig. An empty
// path yields the defaults. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.GridWidth <= 0 || c.GridHeight <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.GridWidth, c.GridHeight)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	case c.FramesPerSec <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FramesPerSec)
	case c.TicksPerSecond <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.TicksPerSecond)
	case c.TicksPerSecond > c.FramesPerSec:
		return fmt.Errorf("%w: tps (%d) exceeds fps (%d)", ErrInvalidConfig, c.TicksPerSecond, c.FramesPerSec)
	}
	return nil
}

// FrameDuration is the frame-rate limiter interval.
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FramesPerSec)
}
