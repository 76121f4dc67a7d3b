// Package telemetry wires tracing and Prometheus metrics for guut.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// TracerName is the instrumentation scope of every guut span.
const TracerName = "guut.dev/pkg/guut"

// Config controls telemetry behavior. Empty fields disable the matching part.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// TraceFile receives spans as JSON.
	TraceFile string
	// MetricsAddr is the listen address of the /metrics endpoint.
	MetricsAddr string
}

// Init installs the tracer provider and starts the metrics endpoint. The
// returned function flushes spans and stops the server; it must be called.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error

		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}

		return errors.Join(errs...)
	}

	if cfg.TraceFile != "" {
		tp, closeFile, err := initTracer(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to init tracer: %w", err)
		}

		otel.SetTracerProvider(tp)

		shutdownFuncs = append(shutdownFuncs, tp.Shutdown, func(context.Context) error { return closeFile() })
	}

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(ctx, cfg.MetricsAddr)
		if err != nil {
			_ = shutdown(ctx)

			return nil, fmt.Errorf("failed to serve metrics: %w", err)
		}

		shutdownFuncs = append(shutdownFuncs, stop)
	}

	return shutdown, nil
}

func initTracer(cfg Config) (*trace.TracerProvider, func() error, error) {
	// #nosec G304 - path comes from configuration
	f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
	if err != nil {
		_ = f.Close()

		return nil, nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)

	return tp, f.Close, nil
}

func serveMetrics(ctx context.Context, addr string) (func(context.Context) error, error) {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", "addr", addr, "error", err)
		}
	}()

	slog.Info("Serving metrics", "addr", ln.Addr().String())

	return srv.Shutdown, nil
}
