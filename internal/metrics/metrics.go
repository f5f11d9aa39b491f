// Package metrics exposes Prometheus counters for catalog traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeNetwork   = "network_error"
	OutcomeMalformed = "malformed"
)

var (
	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_catalog_fetches_total",
		Help: "Catalog fetches by outcome",
	}, []string{"outcome"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_catalog_fetch_duration_seconds",
		Help:    "Duration of catalog fetches that reached the network",
		Buckets: prometheus.DefBuckets,
	})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_catalog_cache_hits_total",
		Help: "Catalog listings served from the local cache",
	})

	SupersededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_catalog_superseded_total",
		Help: "Fetch completions discarded because a newer request was issued",
	})
)

// ObserveFetch records a network fetch.
func ObserveFetch(outcome string, took time.Duration) {
	FetchesTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(took.Seconds())
}

const shutdownTimeout = 2 * time.Second

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
