package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/doctor"
	"github.com/colonyops/flare/internal/printer"
	"github.com/colonyops/flare/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Check that toasts can be shown in this environment",
		UsageText:   "flare doctor [options]",
		Description: "Runs diagnostic checks on configuration, the terminal and the metrics server.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.ConfigPath, os.LookupEnv),
		doctor.NewTerminalCheck(doctor.SystemEnvironment()),
	}
	if cmd.flags.Config != nil {
		checks = append(checks, doctor.NewMetricsCheck(cmd.flags.Config.Metrics.Addr))
	}
	return checks
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(printer.Ctx(ctx), results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(p *printer.Printer, results []doctor.Result) error {
	for _, result := range results {
		p.Section(result.Name)

		for _, item := range result.Items {
			line := item.Label
			if item.Detail != "" {
				line += ": " + item.Detail
			}

			switch item.Status {
			case doctor.StatusPass:
				p.Successf("%s", line)
			case doctor.StatusWarn:
				p.Warnf("%s", line)
			case doctor.StatusFail:
				p.Errorf("%s", line)
			}
			if item.Hint != "" {
				p.Printf("    hint: %s", item.Hint)
			}
		}

		p.Printf("")
	}

	passed, warned, failed := doctor.Summary(results)
	p.Printf("%d passed  %d warnings  %d failed", passed, warned, failed)

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
