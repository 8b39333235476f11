package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"carebase/pkg/requestcontext"
)

const tracerName = "carebase/http"

// Middleware opens a span per request and records the org scope and request
// ID as attributes so traces join up with logs and audit rows.
func Middleware(next http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)
		if org := requestcontext.OrgID(ctx); !org.IsNil() {
			span.SetAttributes(attribute.String("carebase.org_id", org.String()))
		}
		if requestID := requestcontext.RequestID(ctx); requestID != "" {
			span.SetAttributes(attribute.String("carebase.request_id", requestID))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
