package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"drr/internal/api"
	"drr/internal/config"
	"drr/internal/eventbus"
	"drr/internal/session"
	"drr/internal/ui"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config.toml (default: user config dir)")
		apiURL      = flag.String("api", "", "Backend API base URL")
		logPath     = flag.String("log", "", "Log file path (default: drr.log in the config dir)")
		verifyToken = flag.String("verify-email", "", "Verify an email address with the token from the link")
		showVersion = flag.Bool("version", false, "Print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("drr", version)
		return
	}

	if err := config.LoadEnvFile(".env", filepath.Join(config.Dir(), ".env")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Create event bus
	bus := eventbus.NewWithLogger(logrus.StandardLogger())
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigService(*configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}
	config.ApplyEnv(cfg)
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}

	// Set up logging; the terminal belongs to the UI
	if *logPath == "" {
		*logPath = filepath.Join(config.Dir(), "drr.log")
	}
	logFile, err := setupLogging(*logPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logrus.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}
	logrus.WithFields(logrus.Fields{"version": version, "api": cfg.APIBaseURL}).Info("starting drr")

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auth := session.New(cfg.SessionFile, bus)
	if err := auth.Hydrate(); err != nil {
		logrus.WithError(err).Warn("could not restore session")
	}

	client, err := api.New(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout.Duration,
		Auth:    auth,
		Bus:     bus,
		Logger:  logrus.StandardLogger(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var setPasswordToken string
	if *verifyToken != "" {
		res, err := client.VerifyEmail(ctx, *verifyToken)
		if err != nil {
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
			os.Exit(1)
		}
		if !res.NeedsPassword {
			msg := res.Message
			if msg == "" {
				msg = "Email verified. You can now sign in."
			}
			fmt.Println(msg)
			return
		}
		setPasswordToken = res.VerificationToken
		if setPasswordToken == "" {
			setPasswordToken = *verifyToken
		}
	}

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, auth, client).WithConfigService(configSvc)
	if setPasswordToken != "" {
		uiModel.WithSetPasswordToken(setPasswordToken)
	}

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logrus.WithField("event", e.Type()).Warn("event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSessionExpired,
		eventbus.EventSessionEnded,
		eventbus.EventIntegrationsPolled,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		logrus.WithError(err).Error("program failed")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	logrus.Info("UI exited normally")

	// Cleanup: stop the dispatcher before closing the channel it writes to
	bus.Close()
	close(eventChan)
}

// setupLogging sends logrus output to path at the configured level
func setupLogging(path, level string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	return f, nil
}
