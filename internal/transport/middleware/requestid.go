package middleware

import (
	"net/http"

	"github.com/mudithakuruppu/employeemanagement-ui/pkg/logger"

	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// RequestID stamps every outbound request with a trace id, reusing one pinned
// on the request context when present.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(TraceIDHeader) != "" {
			return next.RoundTrip(r)
		}

		traceID := logger.TraceID(r.Context())
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.WithTraceID(r.Context(), traceID)
		out := r.Clone(ctx)
		out.Header.Set(TraceIDHeader, traceID)

		return next.RoundTrip(out)
	})
}
