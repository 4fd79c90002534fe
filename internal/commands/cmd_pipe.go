package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/pkg/iojson"
)

type PipeCmd struct {
	flags *Flags

	// Command-specific flags
	input    iojson.StreamReader
	headless bool
}

// NewPipeCmd creates a new pipe command
func NewPipeCmd(flags *Flags) *PipeCmd {
	return &PipeCmd{flags: flags}
}

// Register adds the pipe command to the application
func (cmd *PipeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pipe",
		Usage:     "Show toasts for a stream of JSON details",
		UsageText: "flare pipe [options] < details.jsonl",
		Description: `Reads toast details from stdin or --file and shows each one as it
arrives. The command exits once the input has ended and every toast is
gone.

Each value is a JSON object, either flat or in the event detail shape:
  {"text":"Saved","variant":"success","duration":3000}
  {"duration":0,"slots":{"text":"Heads up"},"dataset":{"variant":"info"}}
  {"clear":true}

Toasts are drawn on the controlling terminal. Without one, or with
--headless, lifecycle events are written to stdout as JSON lines.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "headless",
				Usage:       "write lifecycle events as JSON lines instead of drawing toasts",
				Destination: &cmd.headless,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PipeCmd) run(ctx context.Context, c *cli.Command) error {
	r, err := cmd.input.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	ctx = logging.WithInput(logging.WithSource(ctx, "pipe"), cmd.input.Source())

	if !cmd.headless {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err == nil {
			defer func() { _ = tty.Close() }()
			return cmd.runInteractive(ctx, r, tty)
		}
		log.Debug().Ctx(ctx).Err(err).Msg("no controlling terminal, falling back to headless")
	}

	return cmd.runHeadless(ctx, c, r)
}

// runInteractive draws on tty, since stdin carries the details.
func (cmd *PipeCmd) runInteractive(ctx context.Context, r io.Reader, tty *os.File) error {
	if err := cmd.flags.LogToFile(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h, err := startHost(ctx, cmd.flags.Config)
	if err != nil {
		return err
	}
	defer h.stop()

	opts := h.tuiOptions(cmd.flags.Config)
	opts.QuitWhenEmpty = true
	opts.WaitForInput = true

	_, errCh := runTUI(ctx, opts, tea.WithInput(tty), tea.WithOutput(tty))

	feedErr := make(chan error, 1)
	go func() {
		feedErr <- feedRequests(ctx, r, h.bus)
	}()

	select {
	case err := <-errCh:
		return err
	case err := <-feedErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			cancel()
			<-errCh
			return fmt.Errorf("read toast details: %w", err)
		}
		return <-errCh
	}
}

func (cmd *PipeCmd) runHeadless(ctx context.Context, c *cli.Command, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h, err := startHost(ctx, cmd.flags.Config)
	if err != nil {
		return err
	}
	defer h.stop()

	_, errCh := h.runHeadless(ctx, cmd.flags.Config, c.Root().Writer, true)

	if err := feedRequests(ctx, r, h.bus); err != nil && !errors.Is(err, context.Canceled) {
		cancel()
		<-errCh
		return fmt.Errorf("read toast details: %w", err)
	}

	return <-errCh
}
