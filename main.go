package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/commands"
	"github.com/colonyops/flare/internal/core/config"
	"github.com/colonyops/flare/internal/core/styles"
	"github.com/colonyops/flare/internal/printer"
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "flare",
		Usage:     "Stacked toast notifications for the terminal",
		UsageText: "flare [global options] command [command options]",
		Description: `Flare shows toast notifications in the terminal. Toasts stack in a corner
of the screen, count down, pause while hovered and can be dismissed with
the mouse or keyboard.

Run 'flare' with no arguments to open the interactive host.
Run 'flare show <text>' for a one-off toast, or pipe JSON details into
'flare pipe' to drive toasts from scripts.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FLARE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (terminal UIs default to " + commands.DefaultLogFile() + ")",
				Sources:     cli.EnvVars("FLARE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FLARE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := flags.SetupLogger(); err != nil {
				return ctx, err
			}

			ctx = printer.NewContext(ctx, printer.New(c.Root().Writer))

			// config validate and doctor report load problems themselves
			switch c.Args().First() {
			case "config", "doctor":
				if cfg, err := config.Read(flags.ConfigPath, os.LookupEnv); err == nil {
					flags.Config = cfg
				}
				return ctx, nil
			}

			cfg, err := config.Load(flags.ConfigPath, os.LookupEnv)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			styles.SetTheme(cfg.Palette())
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			flags.CloseLog()
			return nil
		},
	}

	runCmd := commands.NewRunCmd(flags)

	app = runCmd.Register(app)
	app = commands.NewShowCmd(flags).Register(app)
	app = commands.NewPipeCmd(flags).Register(app)
	app = commands.NewComposeCmd(flags).Register(app)
	app = commands.NewDetailCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	// Register run flags on root command
	app.Flags = append(app.Flags, runCmd.Flags()...)

	// Run the host when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'flare --help' for usage", c.Args().First())
		}
		return runCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
