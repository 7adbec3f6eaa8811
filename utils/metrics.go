package utils

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const metricNamespace = "servertools"

type Metrics struct {
	Registry           *prometheus.Registry
	MotdServed         prometheus.Counter
	MotdReloads        *prometheus.CounterVec
	RegisteredCommands prometheus.Gauge

	server *http.Server
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		MotdServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "motd_served_total",
			Help:      "How many times the motd was sent to a player",
		}),
		MotdReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "motd_reloads_total",
			Help:      "How many times the motd file was read from disk",
		}, []string{"result"}),
		RegisteredCommands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "registered_commands",
			Help:      "Commands handed to the server on startup",
		}),
	}
	m.Registry.MustRegister(m.MotdServed, m.MotdReloads, m.RegisteredCommands)
	return m
}

// Serve exposes the metrics on addr until Close is called.
func (m *Metrics) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logrus.Infof("Serving metrics on %s", addr)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Warnf("Failed to serve metrics %s", err)
		}
	}()
}

func (m *Metrics) Close() error {
	if m.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.server.Shutdown(ctx)
}
