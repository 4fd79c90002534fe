package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/colonyops/flare/internal/core/config"
	"github.com/colonyops/flare/internal/core/eventbus"
	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/internal/core/toast"
	"github.com/colonyops/flare/internal/headless"
	"github.com/colonyops/flare/internal/metrics"
	"github.com/colonyops/flare/internal/tui"
	"github.com/colonyops/flare/pkg/iojson"
)

const busBuffer = 256

// startBus creates the event bus and runs it until ctx is done.
func startBus(ctx context.Context) *eventbus.EventBus {
	bus := eventbus.New(busBuffer)
	eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
	go bus.Start(ctx)
	return bus
}

// startMetrics serves the recorder on addr. An empty addr disables metrics
// and returns empty hooks.
func startMetrics(ctx context.Context, addr string, bus *eventbus.EventBus) (toast.Lifecycle, func(), error) {
	if addr == "" {
		return toast.Lifecycle{}, func() {}, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rec := metrics.New(metrics.WithRegistry(reg))
	if bus != nil {
		rec.ObserveBus(bus)
	}

	srv := metrics.NewServer(addr, reg, logging.Component("metrics"))
	if err := srv.Start(ctx); err != nil {
		return toast.Lifecycle{}, nil, fmt.Errorf("start metrics server: %w", err)
	}
	log.Info().Str("url", fmt.Sprintf("http://%s/metrics", srv.Addr())).Msg("metrics endpoint available")

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown metrics server")
		}
	}
	return rec.Lifecycle(), stop, nil
}

// feedRequests decodes a JSON value stream and publishes each value on the
// bus. Values with "clear": true dismiss every toast; values that are not
// toast details are logged and skipped. Publishing waits for room on the
// bus so a long stream is never truncated. When the stream ends the bus
// receives input.closed.
func feedRequests(ctx context.Context, r io.Reader, bus *eventbus.EventBus) error {
	logger := logging.Component("feed")

	var index, count int
	err := iojson.Each(ctx, r, func(raw []byte) error {
		index++
		if gjson.GetBytes(raw, "clear").Bool() {
			return bus.PublishToastClearWait(ctx, eventbus.ClearToastsPayload{})
		}

		req, err := toast.ParseDetail(raw)
		if err != nil {
			logger.Warn().Ctx(logging.WithIndex(ctx, index)).Err(err).Str("value", string(raw)).Msg("skipping invalid toast detail")
			return nil
		}

		count++
		return bus.PublishToastShowWait(ctx, eventbus.ShowToastPayload{Request: req})
	})
	if err != nil {
		return err
	}

	logger.Debug().Ctx(ctx).Int("requests", count).Msg("input closed")
	return bus.PublishInputClosedWait(ctx, eventbus.InputClosedPayload{})
}

// host bundles what every toast host command needs: a running bus and the
// metrics hooks for the manager.
type host struct {
	bus       *eventbus.EventBus
	lifecycle toast.Lifecycle
	stop      func()
}

// startHost starts the bus and, when configured, the metrics server. The
// bus runs until ctx is done; stop only shuts the metrics server down.
func startHost(ctx context.Context, cfg *config.Config) (*host, error) {
	bus := startBus(ctx)

	lc, stop, err := startMetrics(ctx, cfg.Metrics.Addr, bus)
	if err != nil {
		return nil, err
	}

	return &host{bus: bus, lifecycle: lc, stop: stop}, nil
}

// toastOptions returns the manager options from cfg with the metrics hooks
// attached.
func (h *host) toastOptions(cfg *config.Config) toast.Options {
	opts := cfg.ToastOptions()
	opts.Lifecycle = h.lifecycle
	opts.Logger = logging.Component("toast")
	return opts
}

// tuiOptions returns the TUI options for cfg, fed by the host bus.
func (h *host) tuiOptions(cfg *config.Config) tui.Options {
	return tui.Options{
		Bus:      h.bus,
		Toast:    h.toastOptions(cfg),
		Width:    cfg.Toast.Width,
		Markdown: cfg.TUI.Markdown,
	}
}

// runHeadless routes the bus into a headless host writing events to w and
// runs it until ctx is done or, with exitWhenIdle, the input drains.
func (h *host) runHeadless(ctx context.Context, cfg *config.Config, w io.Writer, exitWhenIdle bool) (*headless.Host, <-chan error) {
	hh := headless.New(w, headless.Options{
		Toast:        h.toastOptions(cfg),
		ExitWhenIdle: exitWhenIdle,
	})
	eventbus.NewToastRouter(h.bus, hh).Register()

	errCh := make(chan error, 1)
	go func() {
		errCh <- hh.Run(ctx)
	}()
	return hh, errCh
}

// runTUI runs the Bubble Tea host until it quits.
func runTUI(ctx context.Context, opts tui.Options, progOpts ...tea.ProgramOption) (*tea.Program, <-chan error) {
	m := tui.New(opts)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)...)

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Run()
		if err != nil {
			err = fmt.Errorf("run tui: %w", err)
		}
		errCh <- err
	}()
	return p, errCh
}
