package cliconfig

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli"
)

func loadArgs(t *testing.T, args ...string) (game.Config, error) {
	t.Helper()

	var cfg game.Config
	var loadErr error

	app := cli.NewApp()
	app.Name = "test"
	app.Flags = Flags
	app.Action = func(c *cli.Context) error {
		cfg, loadErr = Load(c)
		return nil
	}

	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("app.Run: %v", err)
	}
	return cfg, loadErr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadArgs(t)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridWidth != game.DefaultGridWidth || cfg.TicksPerSecond != game.DefaultTicksPerSecond {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "snake.yaml", "grid_width: 30\ngrid_height: 15\nplayer_name: file\n")

	cfg, err := loadArgs(t, "--config", path, "--width", "12", "--name", "flag", "--tps", "5")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.GridWidth != 12 {
		t.Errorf("GridWidth = %d, want 12 from flag", cfg.GridWidth)
	}
	if cfg.GridHeight != 15 {
		t.Errorf("GridHeight = %d, want 15 from file", cfg.GridHeight)
	}
	if cfg.PlayerName != "flag" {
		t.Errorf("PlayerName = %q, want flag", cfg.PlayerName)
	}
	if cfg.TicksPerSecond != 5 {
		t.Errorf("TicksPerSecond = %d, want 5", cfg.TicksPerSecond)
	}
}

func TestLoadFlagRepairsInvalidFile(t *testing.T) {
	path := writeFile(t, "snake.yaml", "tps: 100\n")

	if _, err := loadArgs(t, "--config", path); !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if _, err := loadArgs(t, "--config", path, "--tps", "10"); err != nil {
		t.Errorf("flag override should make the config valid, got %v", err)
	}
}

func TestLoadRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"--width", "0"}},
		{"negative height", []string{"--height", "-3"}},
		{"zero fps", []string{"--fps", "0"}},
		{"tps above fps", []string{"--fps", "10", "--tps", "11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadArgs(t, tt.args...); !errors.Is(err, game.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loadArgs(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("err = %v, want a read error", err)
	}
}

func TestSetupLoggingToFile(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})

	cfg := game.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "snake.log")
	cfg.LogLevel = "warn"

	closer, err := SetupLogging(cfg, io.Discard)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}

	log.Info("hidden message")
	log.Warn("visible message")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "hidden message") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(string(raw), "visible message") {
		t.Errorf("log file missing warn message: %q", raw)
	}
}

func TestSetupLoggingBadLevel(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.LogLevel = "loud"

	if _, err := SetupLogging(cfg, io.Discard); !errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
