package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/fragmede/commentdeck/internal/api"
	"github.com/fragmede/commentdeck/internal/config"
	"github.com/fragmede/commentdeck/internal/logutils"
	"github.com/fragmede/commentdeck/internal/repository"
	"github.com/fragmede/commentdeck/internal/ui"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

// Populated at build-time via -ldflags.
var version = "dev"

func build() string {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				return mv
			}
		}
	}
	return version
}

type flags struct {
	ConfigPath string
	DataDir    string
	Endpoint   string
	LogLevel   string
	LogFile    string
	Plain      bool
}

func main() {
	var (
		f         flags
		cfg       *config.Config
		logCloser func()
	)

	app := &cli.Command{
		Name:    "commentdeck",
		Usage:   "Browse a remote comment list in the terminal",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("COMMENTDECK_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("COMMENTDECK_DATA_DIR"),
				Value:       config.DefaultDataDir(),
				Destination: &f.DataDir,
			},
			&cli.StringFlag{
				Name:        "endpoint",
				Usage:       "comments endpoint URL (overrides config)",
				Sources:     cli.EnvVars("COMMENTDECK_ENDPOINT"),
				Destination: &f.Endpoint,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("COMMENTDECK_LOG_LEVEL"),
				Value:       "info",
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/commentdeck.log)",
				Sources:     cli.EnvVars("COMMENTDECK_LOG_FILE"),
				Destination: &f.LogFile,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print comments as text and exit",
				Sources:     cli.EnvVars("COMMENTDECK_PLAIN"),
				Destination: &f.Plain,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			cfg, err = config.Load(f.ConfigPath, f.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if f.Endpoint != "" {
				cfg.Endpoint = f.Endpoint
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid endpoint: %w", err)
				}
			}

			logFile := f.LogFile
			if logFile == "" {
				logFile = cfg.LogPath
			}
			logger, closer, err := logutils.New(f.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unexpected argument %q. Run 'commentdeck --help' for usage", c.Args().First())
			}
			machine := newMachine(*cfg, log.Logger)
			defer machine.Close()

			if f.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
				return runPlain(ctx, *cfg, machine)
			}
			return runTUI(*cfg, machine)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newMachine wires the HTTP client, repository and view-state machine.
func newMachine(cfg config.Config, logger zerolog.Logger) *viewstate.Machine {
	client := api.NewClient(api.Options{
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
		Logger:    logger.With().Str("component", "api").Logger(),
	})
	repo := repository.New(client, logger.With().Str("component", "repository").Logger())
	return viewstate.New(repo, logger.With().Str("component", "viewstate").Logger())
}

func runTUI(cfg config.Config, machine *viewstate.Machine) error {
	app := ui.NewApp(cfg, machine, log.Logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	app.SetProgram(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func runPlain(ctx context.Context, cfg config.Config, machine *viewstate.Machine) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	width := cfg.BodyWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < width {
		width = w
	}
	return ui.RunPlain(ctx, machine, os.Stdout, width)
}
