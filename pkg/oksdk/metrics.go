package oksdk

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by every metric.
const (
	OutcomeSuccess         = "success"
	OutcomeAPIError        = "api_error"
	OutcomeAuthError       = "auth_error"
	OutcomeAuthRequired    = "auth_required"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeTransportError  = "transport_error"
	OutcomeOther           = "other"
)

// MetricsCollector exposes Prometheus metrics for API calls and token
// grants. A nil *MetricsCollector is valid and records nothing.
type MetricsCollector struct {
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	grantsTotal   *prometheus.CounterVec
	apiErrorCodes *prometheus.CounterVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(registry)

	return &MetricsCollector{
		callsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okapi_api_calls_total",
				Help: "Total number of API calls by method and outcome",
			},
			[]string{"api_method", "outcome"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "okapi_api_call_duration_seconds",
				Help:    "Duration of API calls in seconds, signing included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api_method"},
		),
		grantsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okapi_token_grants_total",
				Help: "Total number of token endpoint requests by grant type and outcome",
			},
			[]string{"grant_type", "outcome"},
		),
		apiErrorCodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "okapi_api_error_codes_total",
				Help: "API error envelopes by error_code",
			},
			[]string{"error_code"},
		),
	}
}

// RecordAPICall records one APICall.
func (mc *MetricsCollector) RecordAPICall(method string, duration time.Duration, err error) {
	if mc == nil {
		return
	}

	mc.callsTotal.WithLabelValues(method, Outcome(err)).Inc()
	mc.callDuration.WithLabelValues(method).Observe(duration.Seconds())

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		mc.apiErrorCodes.WithLabelValues(strconv.Itoa(apiErr.Code)).Inc()
	}
}

// RecordTokenGrant records one request to the token endpoint.
func (mc *MetricsCollector) RecordTokenGrant(grantType string, err error) {
	if mc == nil {
		return
	}
	mc.grantsTotal.WithLabelValues(grantType, Outcome(err)).Inc()
}

// Outcome maps an SDK error to its metrics label.
func Outcome(err error) string {
	var (
		apiErr       *APIError
		authErr      *AuthError
		transportErr *TransportError
	)

	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	case errors.As(err, &authErr):
		return OutcomeAuthError
	case errors.Is(err, ErrAuthRequired):
		return OutcomeAuthRequired
	case errors.Is(err, ErrInvalidArgument):
		return OutcomeInvalidArgument
	case errors.As(err, &transportErr):
		return OutcomeTransportError
	default:
		return OutcomeOther
	}
}
