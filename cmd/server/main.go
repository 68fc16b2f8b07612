package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/mazerunner/internal/config"
	"github.com/Mshel/mazerunner/internal/history"
	"github.com/Mshel/mazerunner/internal/runner"
	"github.com/Mshel/mazerunner/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	var recorder runner.Recorder
	var lister ui.RunLister
	if cfg.HistoryDBPath != "" {
		store, err := history.Open(cfg.HistoryDBPath)
		if err != nil {
			log.Fatal("Could not open run history", "path", cfg.HistoryDBPath, "error", err)
		}
		defer store.Close()
		recorder = store
		lister = store
	}

	mazeRunner := runner.New(cfg.MaxSteps, recorder)
	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP)

	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		log.Debug("New maze session", "user", sshSession.User(), "width", pty.Window.Width, "height", pty.Window.Height)
		controllerModel := ui.NewControllerModel(mazeRunner, cfg.MazeDir, lister, cfg.ReplayTick, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}

	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddress()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if err != nil {
		log.Fatal("Failed to create ssh server", "error", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", cfg.SSHAddress(), "mazes", cfg.MazeDir)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
