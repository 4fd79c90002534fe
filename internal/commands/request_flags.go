package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/flare/internal/core/toast"
)

// requestFlags are the toast fields shared by show, compose and detail.
type requestFlags struct {
	text       string
	heading    string
	variant    string
	position   string
	duration   time.Duration
	persistent bool
}

func (rf *requestFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "toast body (defaults to the arguments)",
			Destination: &rf.text,
		},
		&cli.StringFlag{
			Name:        "heading",
			Aliases:     []string{"H"},
			Usage:       "toast heading",
			Destination: &rf.heading,
		},
		&cli.StringFlag{
			Name:        "variant",
			Usage:       "toast variant (" + strings.Join(variantNames(), ", ") + ")",
			Destination: &rf.variant,
		},
		&cli.StringFlag{
			Name:        "position",
			Aliases:     []string{"p"},
			Usage:       "screen anchor, e.g. top-end or bottom-center (defaults to config)",
			Destination: &rf.position,
		},
		&cli.DurationFlag{
			Name:        "duration",
			Aliases:     []string{"d"},
			Usage:       "time on screen, 0 keeps the toast until dismissed (defaults to config)",
			Destination: &rf.duration,
		},
		&cli.BoolFlag{
			Name:        "persistent",
			Usage:       "keep the toast until dismissed",
			Destination: &rf.persistent,
		},
	}
}

// completions maps the enum flags to their values for shell completion.
func (rf *requestFlags) completions() map[string][]string {
	return map[string][]string{
		"variant":  variantNames(),
		"position": positionFlagValues(),
	}
}

// request builds the request described by the flags. Duration is only set
// when given explicitly, so the configured default applies otherwise.
func (rf *requestFlags) request(c *cli.Command) (toast.Request, error) {
	text := rf.text
	if text == "" {
		text = strings.Join(c.Args().Slice(), " ")
	}
	if strings.TrimSpace(text) == "" {
		return toast.Request{}, fmt.Errorf("toast text is required, pass it as arguments or with --text")
	}

	req := toast.New(text, toast.WithHeading(rf.heading))

	if rf.variant != "" {
		v, ok := toast.ParseVariant(rf.variant)
		if !ok {
			return toast.Request{}, fmt.Errorf("unknown variant %q, expected one of %s", rf.variant, strings.Join(variantNames(), ", "))
		}
		req.Variant = string(v)
	}

	if rf.position != "" {
		p, ok := toast.ParsePosition(rf.position)
		if !ok {
			return toast.Request{}, fmt.Errorf("unknown position %q, expected one of %s", rf.position, strings.Join(positionFlagValues(), ", "))
		}
		req.Position = string(p)
	}

	switch {
	case rf.persistent:
		toast.Persistent()(&req)
	case c.IsSet("duration"):
		if rf.duration < 0 {
			return toast.Request{}, fmt.Errorf("duration must not be negative")
		}
		toast.WithDuration(rf.duration)(&req)
	}

	return req, nil
}

func variantNames() []string {
	names := make([]string, len(toast.Variants))
	for i, v := range toast.Variants {
		names[i] = string(v)
	}
	return names
}

// positionFlagValues returns the anchors in their shell-friendly form.
func positionFlagValues() []string {
	names := make([]string, len(toast.Positions))
	for i, p := range toast.Positions {
		names[i] = strings.ReplaceAll(string(p), " ", "-")
	}
	return names
}
