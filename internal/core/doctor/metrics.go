package doctor

import (
	"context"
	"fmt"
	"net"
)

// MetricsCheck verifies the metrics listen address can be bound.
type MetricsCheck struct {
	addr string
}

// NewMetricsCheck creates a metrics check. An empty addr means metrics are
// disabled.
func NewMetricsCheck(addr string) *MetricsCheck {
	return &MetricsCheck{addr: addr}
}

func (c *MetricsCheck) Name() string {
	return "Metrics"
}

func (c *MetricsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.addr == "" {
		result.pass("server", "disabled")
		return result
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", c.addr)
	if err != nil {
		result.fail("server", fmt.Sprintf("cannot listen on %s: %v", c.addr, err)).Hint = "change metrics.addr or FLARE_METRICS_ADDR"
		return result
	}
	_ = ln.Close()

	result.pass("server", "http://"+c.addr+"/metrics")
	return result
}
