package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"

	"github.com/Mshel/snake/internal/autopilot"
	"github.com/Mshel/snake/internal/cliconfig"
	"github.com/Mshel/snake/internal/game"
	"github.com/Mshel/snake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "snake"
	app.Usage = "play snake in the terminal"
	app.Flags = cliconfig.Flags
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("snake failed", "error", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := cliconfig.Load(c)
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so logs only go somewhere when a file is set.
	logCloser, err := cliconfig.SetupLogging(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := ui.Options{
		Config: cfg,
		Random: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	if cfg.ScoresPath != "" {
		scores, err := game.NewHighScoreService(cfg.ScoresPath)
		if err != nil {
			return err
		}
		defer scores.Close()
		opts.Scores = scores
	}

	if cfg.AutopilotPath != "" {
		pilot, err := autopilot.Open(ctx, cfg.AutopilotPath)
		if err != nil {
			return err
		}
		defer pilot.Close()
		opts.Pilot = pilot
	}

	log.Info("Starting game", "width", cfg.GridWidth, "height", cfg.GridHeight, "fps", cfg.FramesPerSec, "tps", cfg.TicksPerSecond)

	p := tea.NewProgram(ui.NewControllerModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
