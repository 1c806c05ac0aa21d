package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tactilehq/dotwin/internal/commands"
	"github.com/tactilehq/dotwin/internal/core/config"
	"github.com/tactilehq/dotwin/internal/core/translate"
	"github.com/tactilehq/dotwin/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "dotwin",
		Usage:     "Braille display engine and simulator",
		UsageText: "dotwin [global options] command [command options]",
		Description: `Dotwin translates text to braille, wraps it to a display window, and
routes display input through a stack of modes.

Run 'dotwin' with no arguments to open the interactive simulator.
Run 'dotwin render <text>' to translate text on the command line.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DOTWIN_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to the state dir)",
				Sources:     cli.EnvVars("DOTWIN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DOTWIN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The simulator owns the terminal, so logs always go to a file.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			registry, err := translate.NewRegistry(log.With().Str("component", "tables").Logger())
			if err != nil {
				return ctx, fmt.Errorf("init tables: %w", err)
			}
			if cfg.Tables.Dir != "" {
				if err := registry.LoadDir(cfg.Tables.Dir, cfg.Tables.Glob); err != nil {
					log.Warn().Err(err).Str("dir", cfg.Tables.Dir).Msg("failed to load table dir")
				}
			}
			if cfg.Tables.Active != "" {
				if err := registry.SetActive(cfg.Tables.Active); err != nil {
					return ctx, fmt.Errorf("activate table: %w", err)
				}
			}
			flags.Registry = registry

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	simCmd := commands.NewSimCmd(flags)

	app = simCmd.Register(app)
	app = commands.NewRenderCmd(flags).Register(app)
	app = commands.NewTablesCmd(flags).Register(app)
	app = commands.NewInitCmd(flags).Register(app)
	app = commands.NewDocsCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set the simulator as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'dotwin --help' for usage", c.Args().First())
		}
		return simCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
