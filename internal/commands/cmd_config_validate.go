package commands

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/config"
	"github.com/colonyops/flare/internal/printer"
	"github.com/colonyops/flare/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// validationIssue is one field error in the report.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "flare config validate [options]",
				Description: "Validates the configuration file and FLARE_* environment overrides, checking positions, themes, durations and the metrics listen address.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	var issues []validationIssue
	var warnings []config.ValidationWarning

	cfg, err := config.Read(cmd.flags.ConfigPath, os.LookupEnv)
	if err != nil {
		issues = issuesFromError(err)
	} else {
		issues = issuesFromError(cfg.ValidateDeep(cmd.flags.ConfigPath))
		warnings = cfg.Warnings()
	}

	if cmd.format == "json" {
		return cmd.outputJSON(c, issues, warnings)
	}

	return cmd.outputText(p, issues, warnings)
}

// issuesFromError flattens criterio field errors; any other error is
// reported against the config file.
func issuesFromError(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		issues := make([]validationIssue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
		}
		return issues
	}

	return []validationIssue{{Field: "config_file", Message: err.Error()}}
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, issues []validationIssue, warnings []config.ValidationWarning) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []validationIssue          `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	}{
		Valid:    len(issues) == 0,
		Errors:   issues,
		Warnings: warnings,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, issues []validationIssue, warnings []config.ValidationWarning) error {
	p.Infof("Config file: %s", cmd.flags.ConfigPath)

	for _, warn := range warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, issue := range issues {
		p.Errorf("%s: %s", issue.Field, issue.Message)
	}

	p.Printf("")
	if len(issues) == 0 {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(issues))
	return cli.Exit("", 1)
}
