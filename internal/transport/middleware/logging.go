package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// sensitiveFields are matched as substrings of lower-cased header names and JSON keys
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"cookie",
	"secret",
	"credential",
}

// Logging logs each outbound call and its response with sensitive headers and
// JSON fields masked.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			traceID := r.Header.Get(TraceIDHeader)

			logRequest(logger, r, traceID)

			resp, err := next.RoundTrip(r)
			duration := time.Since(start)
			if err != nil {
				logger.Error("request failed",
					"trace_id", traceID,
					"method", r.Method,
					"url", r.URL.String(),
					"duration_ms", duration.Milliseconds(),
					"error", err,
				)
				return nil, err
			}

			logResponse(logger, r, resp, duration, traceID)
			return resp, nil
		})
	}
}

// logRequest logs the outgoing HTTP request with sensitive data filtered
func logRequest(logger *slog.Logger, r *http.Request, traceID string) {
	var bodyBytes []byte
	if r.Body != nil && r.GetBody != nil {
		if body, err := r.GetBody(); err == nil {
			bodyBytes, _ = io.ReadAll(body)
			_ = body.Close()
		}
	}

	logger.Debug("outgoing request",
		"trace_id", traceID,
		"method", r.Method,
		"url", r.URL.String(),
		"headers", filterSensitiveHeaders(r.Header),
		"body", filterSensitiveBody(bodyBytes),
	)
}

func logResponse(logger *slog.Logger, r *http.Request, resp *http.Response, duration time.Duration, traceID string) {
	var bodyBytes []byte
	if resp.Body != nil {
		bodyBytes, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	}

	logLevel := slog.LevelDebug
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		logLevel = slog.LevelWarn
	} else if resp.StatusCode >= 500 {
		logLevel = slog.LevelError
	}

	logger.Log(r.Context(), logLevel, "response",
		"trace_id", traceID,
		"method", r.Method,
		"url", r.URL.String(),
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"response_size", len(bodyBytes),
		"body", filterSensitiveBody(bodyBytes),
	)
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			filtered[name] = "[FILTERED]"
			continue
		}
		filtered[name] = strings.Join(values, ", ")
	}
	return filtered
}

// filterSensitiveBody masks sensitive JSON fields. Non-JSON bodies are dropped
// entirely if they mention anything sensitive.
func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var jsonData interface{}
	if err := json.Unmarshal(body, &jsonData); err != nil {
		if isSensitive(string(body)) {
			return "[FILTERED - Contains sensitive data]"
		}
		return string(body)
	}

	filteredBytes, err := json.Marshal(filterSensitiveJSON(jsonData))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(filteredBytes)
}

func filterSensitiveJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		filtered := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				filtered[key] = "[FILTERED]"
			} else {
				filtered[key] = filterSensitiveJSON(value)
			}
		}
		return filtered
	case []interface{}:
		filtered := make([]interface{}, len(v))
		for i, item := range v {
			filtered[i] = filterSensitiveJSON(item)
		}
		return filtered
	default:
		return v
	}
}
