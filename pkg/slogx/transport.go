package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/okapi/pkg/idx"
)

// RequestIDHeader carries the correlation ID of an outbound request.
const RequestIDHeader = "X-Request-ID"

// Transport wraps base so every outbound request is tagged with a request ID
// and logged once it completes. Query strings are never logged because they
// carry signatures and access tokens.
func Transport(base http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, logger: logger}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := req.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = idx.NewRequestID()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, reqID)
	}

	logger := FromContext(req.Context(), t.logger).With(
		"req_id", reqID,
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
	)

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Warn("api_request_failed", "duration_ms", duration, "err", err)
		return nil, err
	}

	logger.Debug("api_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
