package diag

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics: 进程内计数器。长任务（Hadoop streaming 场景）可开启抓取端点。
// 方法对 nil 接收者安全。
type Metrics struct {
	reg *prometheus.Registry

	recordsIn    prometheus.Counter
	recordsOut   prometheus.Counter
	diffs        prometheus.Counter
	diffTimeouts prometheus.Counter
	pages        prometheus.Counter
}

// NewMetrics 构造独立注册表的计数器集合。
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		recordsIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revdiff", Name: "records_in_total",
			Help: "Revision records consumed.",
		}),
		recordsOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revdiff", Name: "records_out_total",
			Help: "Revision records emitted (incl. the mapper trailing hand-off).",
		}),
		diffs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revdiff", Name: "diffs_total",
			Help: "Diffs computed successfully.",
		}),
		diffTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revdiff", Name: "diff_timeouts_total",
			Help: "Diff invocations abandoned at the deadline.",
		}),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revdiff", Name: "pages_total",
			Help: "Page groups completed.",
		}),
	}
	reg.MustRegister(m.recordsIn, m.recordsOut, m.diffs, m.diffTimeouts, m.pages)
	return m
}

func (m *Metrics) RecordIn() {
	if m != nil {
		m.recordsIn.Inc()
	}
}

func (m *Metrics) RecordOut() {
	if m != nil {
		m.recordsOut.Inc()
	}
}

func (m *Metrics) DiffOK() {
	if m != nil {
		m.diffs.Inc()
	}
}

func (m *Metrics) DiffTimeout() {
	if m != nil {
		m.diffTimeouts.Inc()
	}
}

func (m *Metrics) PageDone() {
	if m != nil {
		m.pages.Inc()
	}
}

// Serve 在 addr 上暴露 /metrics，直至 ctx 取消。
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	if m == nil || addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
		return nil
	case err := <-done:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
