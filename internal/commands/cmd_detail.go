package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/toast"
	"github.com/colonyops/flare/pkg/iojson"
)

type DetailCmd struct {
	flags *Flags

	// Command-specific flags
	req    requestFlags
	decode bool
	input  iojson.StreamReader
}

// decodedDetail is the normalized form of a detail printed by --decode.
type decodedDetail struct {
	Text       string `json:"text,omitempty"`
	Heading    string `json:"heading,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Position   string `json:"position,omitempty"`
	DurationMS *int64 `json:"duration_ms,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewDetailCmd creates a new detail command
func NewDetailCmd(flags *Flags) *DetailCmd {
	return &DetailCmd{flags: flags}
}

// Register adds the detail command to the application
func (cmd *DetailCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "detail",
		Usage:     "Encode or decode toast event details",
		UsageText: "flare detail [options] <text...>\n   flare detail --decode [--file path]",
		Description: `Prints the event detail JSON for a toast described by flags. The output
is what 'flare pipe' reads:

  flare detail --variant success "Saved" | flare pipe

With --decode, details are read from stdin or --file and printed in their
normalized form, which shows how each value will be interpreted.`,
		Flags: append(cmd.req.flags(),
			&cli.BoolFlag{
				Name:        "decode",
				Usage:       "read details and print how they are interpreted",
				Destination: &cmd.decode,
			},
			cmd.input.Flag(),
		),
		ShellComplete: EnumCompleter(cmd.req.completions()),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DetailCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.decode {
		return cmd.runDecode(ctx, c)
	}

	req, err := cmd.req.request(c)
	if err != nil {
		return err
	}

	data, err := toast.EncodeDetail(req)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Root().Writer, string(data))
	return err
}

func (cmd *DetailCmd) runDecode(ctx context.Context, c *cli.Command) error {
	r, err := cmd.input.Open()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	var out []decodedDetail
	err = iojson.Each(ctx, r, func(raw []byte) error {
		out = append(out, decodeDetail(raw))
		return nil
	})
	if err != nil {
		return err
	}

	errWriter := c.Root().ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	return iojson.WriteWith(c.Root().Writer, errWriter, out)
}

func decodeDetail(raw []byte) decodedDetail {
	req, err := toast.ParseDetail(raw)
	if err != nil {
		return decodedDetail{Error: err.Error()}
	}

	d := decodedDetail{
		Text:     req.Text,
		Heading:  req.Heading,
		Variant:  req.Variant,
		Position: req.Position,
	}
	if req.Duration != nil {
		ms := req.Duration.Milliseconds()
		d.DurationMS = &ms
	}
	return d
}
