package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/eventbus"
	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/internal/core/toast"
)

type ShowCmd struct {
	flags *Flags

	// Command-specific flags
	req      requestFlags
	headless bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show a single toast and exit once it is gone",
		UsageText: "flare show [options] <text...>",
		Description: `Shows one toast and exits after it has been dismissed, either by its
timeout or by the user. Persistent toasts stay until dismissed.

Examples:
  flare show "Build finished"
  flare show --variant danger --heading CI "Tests failed on main"
  flare show --position top-center --duration 10s "Deploying"`,
		Flags: append(cmd.req.flags(), &cli.BoolFlag{
			Name:        "headless",
			Usage:       "write lifecycle events as JSON lines instead of drawing the toast",
			Destination: &cmd.headless,
		}),
		ShellComplete: EnumCompleter(cmd.req.completions()),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	req, err := cmd.req.request(c)
	if err != nil {
		return err
	}

	ctx = logging.WithSource(ctx, "show")
	if cmd.headless {
		return showHeadless(ctx, cmd.flags, c, req)
	}
	return showInteractive(ctx, cmd.flags, req)
}

// showInteractive draws req and returns once the stack is empty.
func showInteractive(ctx context.Context, flags *Flags, reqs ...toast.Request) error {
	if err := flags.LogToFile(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h, err := startHost(ctx, flags.Config)
	if err != nil {
		return err
	}
	defer h.stop()

	opts := h.tuiOptions(flags.Config)
	opts.Initial = reqs
	opts.QuitWhenEmpty = true

	_, errCh := runTUI(ctx, opts)
	return <-errCh
}

// showHeadless runs reqs through a headless host and returns once every
// toast has been removed.
func showHeadless(ctx context.Context, flags *Flags, c *cli.Command, reqs ...toast.Request) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h, err := startHost(ctx, flags.Config)
	if err != nil {
		return err
	}
	defer h.stop()

	_, errCh := h.runHeadless(ctx, flags.Config, c.Root().Writer, true)

	for _, req := range reqs {
		if err := h.bus.PublishToastShowWait(ctx, eventbus.ShowToastPayload{Request: req}); err != nil {
			return err
		}
	}
	if err := h.bus.PublishInputClosedWait(ctx, eventbus.InputClosedPayload{}); err != nil {
		return err
	}

	return <-errCh
}
