package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"folioadmin/internal/client"
	"folioadmin/internal/config"
	"folioadmin/internal/eventbus"
	"folioadmin/internal/logging"
)

var globalFlags struct {
	configPath string
	baseURL    string
	email      string
	logFile    string
	logLevel   string
}

// app bundles what every command needs
type app struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	logger *slog.Logger
	logOut io.Closer
	bus    eventbus.EventBus
	client *client.Client
}

// setup loads config, opens the log, starts the event bus and signs in
func setup(cmd *cobra.Command) (*app, error) {
	cs := config.NewConfigService(globalFlags.configPath)
	cfg, err := cs.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logOut, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)

	a := &app{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		logger: logger,
		logOut: logOut,
		bus:    eventbus.New(logger),
	}
	subscribeAudit(a.bus, logger)
	// the bus needs the logger the config describes, so the load is
	// announced once both exist
	a.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.Path(), BaseURL: cfg.Server.BaseURL})

	a.client, err = client.NewFromConfig(cfg.Server, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Server.Email != "" {
		password := cfg.Server.Password
		if password == "" {
			password, err = readPassword(cmd)
			if err != nil {
				a.Close()
				return nil, err
			}
		}
		if err := a.client.Login(ctx, cfg.Server.Email, password); err != nil {
			a.Close()
			return nil, fmt.Errorf("login as %s: %w", cfg.Server.Email, err)
		}
	}

	return a, nil
}

// Close stops the bus and releases the log file
func (a *app) Close() {
	a.cancel()
	a.bus.Close()
	_ = a.logOut.Close()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Server.BaseURL = globalFlags.baseURL
	}
	if flags.Changed("email") {
		cfg.Server.Email = globalFlags.email
	}
	if flags.Changed("log-file") {
		cfg.Log.Path = globalFlags.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = globalFlags.logLevel
	}
}

// subscribeAudit writes selection and delete events to the log
func subscribeAudit(bus eventbus.EventBus, logger *slog.Logger) {
	audit := logger.With("component", "audit")
	types := []eventbus.EventType{
		eventbus.EventConfigLoaded,
		eventbus.EventError,
		eventbus.EventPageLoaded,
		eventbus.EventSelectionChanged,
		eventbus.EventInvalidTile,
		eventbus.EventDeleteRequested,
		eventbus.EventDeleteDeclined,
		eventbus.EventDeleteCompleted,
		eventbus.EventDeleteFailed,
	}
	for _, t := range types {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			audit.Info("event", "type", e.Type(), "event", e)
		})
	}
}

func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password: set FOLIO_PASSWORD or run from a terminal")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
