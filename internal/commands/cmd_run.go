package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/pkg/iojson"
)

type RunCmd struct {
	flags *Flags

	// Command-specific flags
	headless bool
	input    iojson.StreamReader
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Flags returns the run flags so the root command can accept them when it
// runs the host by default.
func (cmd *RunCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "headless",
			Usage:       "run without a terminal UI, writing lifecycle events as JSON lines",
			Destination: &cmd.headless,
		},
		cmd.input.Flag(),
	}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run the interactive toast host",
		UsageText: "flare run [options]",
		Description: `Opens the toast host in the terminal. Toasts stack in the configured corner,
pause while the pointer is over them and dismiss on click or Escape.

Press 'n' for a demo toast and '?' for every shortcut.

With --file, toast details are read from a JSON lines file while the host
runs. With --headless, no UI is drawn: details are read from --file or
stdin and every lifecycle transition is written to stdout as JSON until
the command is interrupted.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run starts the host.
func (cmd *RunCmd) Run(ctx context.Context, c *cli.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cmd.headless {
		return cmd.runHeadless(logging.WithSource(ctx, "run"), c)
	}
	return cmd.runInteractive(logging.WithSource(ctx, "tui"))
}

func (cmd *RunCmd) runInteractive(ctx context.Context) error {
	if err := cmd.flags.LogToFile(); err != nil {
		return err
	}

	h, err := startHost(ctx, cmd.flags.Config)
	if err != nil {
		return err
	}
	defer h.stop()

	if cmd.input.Source() != "-" {
		r, err := cmd.input.Open()
		if err != nil {
			return err
		}
		defer func() { _ = r.Close() }()

		go func() {
			if err := feedRequests(logging.WithInput(ctx, cmd.input.Source()), r, h.bus); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Ctx(ctx).Err(err).Msg("reading toast details")
			}
		}()
	}

	_, errCh := runTUI(ctx, h.tuiOptions(cmd.flags.Config))
	return <-errCh
}

func (cmd *RunCmd) runHeadless(ctx context.Context, c *cli.Command) error {
	r, err := cmd.input.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	h, err := startHost(ctx, cmd.flags.Config)
	if err != nil {
		return err
	}
	defer h.stop()

	_, errCh := h.runHeadless(ctx, cmd.flags.Config, c.Root().Writer, false)

	ctx = logging.WithInput(ctx, cmd.input.Source())
	if err := feedRequests(ctx, r, h.bus); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("read toast details: %w", err)
	}
	log.Debug().Ctx(ctx).Msg("input drained, running until interrupted")

	return <-errCh
}
