package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/internal/core/styles"
	"github.com/colonyops/flare/internal/core/toast"
	"github.com/colonyops/flare/internal/printer"
)

type ComposeCmd struct {
	flags *Flags

	// Command-specific flags
	print bool

	// Form values
	heading  string
	text     string
	variant  string
	position string
	duration string
}

// NewComposeCmd creates a new compose command
func NewComposeCmd(flags *Flags) *ComposeCmd {
	return &ComposeCmd{flags: flags}
}

// Register adds the compose command to the application
func (cmd *ComposeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "compose",
		Usage:     "Build a toast with an interactive form",
		UsageText: "flare compose [options]",
		Description: `Prompts for the heading, text, variant, position and duration of a toast,
then shows it like 'flare show'.

With --print the toast is not shown; its event detail JSON is printed
instead, ready to be piped into 'flare pipe'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "print",
				Usage:       "print the event detail JSON instead of showing the toast",
				Destination: &cmd.print,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ComposeCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	cmd.position = cfg.Toast.Position
	cmd.duration = (time.Duration(cfg.Toast.Duration) * time.Millisecond).String()

	if err := cmd.runForm(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("form: %w", err)
	}

	req, err := cmd.request()
	if err != nil {
		return err
	}

	if cmd.print {
		data, err := toast.EncodeDetail(req)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.Root().Writer, string(data))
		return err
	}

	printer.Ctx(ctx).Infof("Showing %q", req.Text)
	return showInteractive(logging.WithSource(ctx, "compose"), cmd.flags, req)
}

func (cmd *ComposeCmd) runForm() error {
	variants := []huh.Option[string]{huh.NewOption("none", "")}
	for _, v := range toast.Variants {
		variants = append(variants, huh.NewOption(string(v), string(v)))
	}

	positions := make([]huh.Option[string], len(toast.Positions))
	for i, p := range toast.Positions {
		positions[i] = huh.NewOption(string(p), string(p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Heading").
				Description("Optional title line").
				Value(&cmd.heading),
			huh.NewText().
				Title("Text").
				Description("Toast body, markdown is rendered").
				Validate(validateText).
				Value(&cmd.text),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Variant").
				Options(variants...).
				Value(&cmd.variant),
			huh.NewSelect[string]().
				Title("Position").
				Options(positions...).
				Value(&cmd.position),
			huh.NewInput().
				Title("Duration").
				Description("For example 5s or 1m30s, 0 keeps the toast until dismissed").
				Validate(validateDuration).
				Value(&cmd.duration),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func (cmd *ComposeCmd) request() (toast.Request, error) {
	d, err := parseFormDuration(cmd.duration)
	if err != nil {
		return toast.Request{}, err
	}

	return toast.New(strings.TrimSpace(cmd.text),
		toast.WithHeading(strings.TrimSpace(cmd.heading)),
		toast.WithVariant(toast.Variant(cmd.variant)),
		toast.WithPosition(toast.Position(cmd.position)),
		toast.WithDuration(d),
	), nil
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

func validateDuration(s string) error {
	_, err := parseFormDuration(s)
	return err
}

func parseFormDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return d, nil
}
