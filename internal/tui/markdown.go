package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/flare/internal/core/styles"
)

type markdownKey struct {
	text  string
	width int
}

// markdownRenderer renders toast rich text with glamour. Rendered output
// is cached per text and width since toasts re-render on every frame.
type markdownRenderer struct {
	enabled   bool
	renderers map[int]*glamour.TermRenderer
	cache     map[markdownKey]string
}

func newMarkdownRenderer(enabled bool) *markdownRenderer {
	return &markdownRenderer{
		enabled:   enabled,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[markdownKey]string),
	}
}

// Render returns text formatted for a column of the given width. Plain
// text is returned unchanged when markdown is disabled or fails to render.
func (r *markdownRenderer) Render(text string, width int) string {
	text = strings.TrimSpace(text)
	if !r.enabled || text == "" || width <= 0 {
		return text
	}

	k := markdownKey{text: text, width: width}
	if out, ok := r.cache[k]; ok {
		return out
	}

	tr, err := r.renderer(width)
	if err != nil {
		log.Debug().Err(err).Msg("markdown renderer unavailable")
		return text
	}

	out, err := tr.Render(text)
	if err != nil {
		log.Debug().Err(err).Msg("markdown render failed")
		return text
	}

	out = strings.Trim(out, "\n")
	r.cache[k] = out
	return out
}

func (r *markdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}
