package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/snake/internal/api"
	"github.com/Mshel/snake/internal/autopilot"
	"github.com/Mshel/snake/internal/cliconfig"
	"github.com/Mshel/snake/internal/game"
	"github.com/Mshel/snake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/urfave/cli"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "6996"

	defaultMaxConnectionsPerIP = 2

	shutdownTimeout = 30 * time.Second
)

var serverFlags = []cli.Flag{
	cli.StringFlag{Name: "host", Value: defaultHost, Usage: "ssh listen host"},
	cli.StringFlag{Name: "port", Value: defaultPort, Usage: "ssh listen port"},
	cli.StringFlag{
		Name:   "host-key",
		Value:  ".ssh/snake_ed25519",
		EnvVar: "SNAKE_PRIVATE_KEY_PATH",
		Usage:  "ssh host key, generated when missing",
	},
	cli.StringFlag{Name: "http", Usage: "serve the leaderboard API on this address (needs --scores)"},
	cli.IntFlag{Name: "max-conns-per-ip", Value: defaultMaxConnectionsPerIP, Usage: "concurrent sessions per IP, 0 for no limit"},
}

func main() {
	app := cli.NewApp()
	app.Name = "snake-server"
	app.Usage = "serve snake over ssh"
	app.Flags = append(append([]cli.Flag{}, cliconfig.Flags...), serverFlags...)
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal("snake-server failed", "error", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := cliconfig.Load(c)
	if err != nil {
		return err
	}

	logCloser, err := cliconfig.SetupLogging(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var scoreBoard ui.ScoreBoard
	var scores *game.HighScoreService
	if cfg.ScoresPath != "" {
		scores, err = game.NewHighScoreService(cfg.ScoresPath)
		if err != nil {
			return err
		}
		defer scores.Close()
		scoreBoard = scores
	}

	var pilot ui.Pilot
	if cfg.AutopilotPath != "" {
		p, err := autopilot.Open(ctx, cfg.AutopilotPath)
		if err != nil {
			return err
		}
		defer p.Close()
		pilot = p
	}

	limiter := newConnectionLimiter(c.Int("max-conns-per-ip"))
	address := net.JoinHostPort(c.String("host"), c.String("port"))

	sshServer, err := wish.NewServer(
		wish.WithAddress(address),
		wish.WithHostKeyPath(c.String("host-key")),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(cfg, scoreBoard, pilot)),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if err != nil {
		return err
	}

	var httpServer *http.Server
	if addr := c.String("http"); addr != "" {
		if scores == nil {
			log.Warn("Leaderboard API disabled: no score database configured", "http", addr)
		} else {
			gin.SetMode(gin.ReleaseMode)
			httpServer = &http.Server{Addr: addr, Handler: api.NewRouter(scores)}
		}
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "address", address)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			stop(done)
		}
	}()

	if httpServer != nil {
		log.Info("Starting leaderboard API", "address", httpServer.Addr)
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Could not start leaderboard API", "error", err)
				stop(done)
			}
		}()
	}

	<-done

	log.Info("Stopping servers")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Could not stop leaderboard API", "error", err)
		}
	}
	if err := sshServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
	return nil
}

// stop wakes the shutdown wait without blocking when a signal or the other
// server already did.
func stop(done chan<- os.Signal) {
	select {
	case done <- nil:
	default:
	}
}

// sessionHandler gives every ssh session its own game. Scores and pilot are
// shared between sessions.
func sessionHandler(cfg game.Config, scores ui.ScoreBoard, pilot ui.Pilot) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		sessionCfg := cfg
		if user := s.User(); user != "" {
			sessionCfg.PlayerName = user
		}
		// Snapshots would land on the server's disk.
		sessionCfg.SnapshotDir = ""

		model := ui.NewControllerModel(ui.Options{
			Config:   sessionCfg,
			Random:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
			Scores:   scores,
			Pilot:    pilot,
			Renderer: bubbletea.MakeRenderer(s),
		})

		sessionID := uuid.NewString()
		log.Info("Session started", "session", sessionID, "user", sessionCfg.PlayerName, "remote", s.RemoteAddr())
		go func() {
			<-s.Context().Done()
			log.Info("Session ended", "session", sessionID, "user", sessionCfg.PlayerName)
		}()

		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
