package httpmiddleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// TelemetryProviders is the subset of the application telemetry needed by
// the instrumentation middleware.
type TelemetryProviders interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
}

// Instrument returns a middleware that traces every request with otelhttp
// and counts requests by method and status on the given meter provider.
func Instrument(operation string, t TelemetryProviders) Middleware {
	meter := t.MeterProvider().Meter("shopkeep/httpmiddleware")
	requests, _ := meter.Int64Counter("http.server.requests")

	return func(next http.Handler) http.Handler {
		counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			requests.Add(r.Context(), 1, metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.Int("http.status_code", rec.status),
			))
		})

		return otelhttp.NewHandler(counted, operation,
			otelhttp.WithTracerProvider(t.TracerProvider()),
			otelhttp.WithMeterProvider(t.MeterProvider()),
		)
	}
}
