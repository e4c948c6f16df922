package token

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds decoder collectors. Nil Metrics records nothing.
type Metrics struct {
	// Messages counts decode results by outcome
	Messages *prometheus.CounterVec
	// Duration measures decode time in seconds
	Duration prometheus.Histogram
	// Headers counts delivered headers
	Headers prometheus.Counter
}

// NewMetrics registers decoder collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Messages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_decoder_messages_total",
				Help: "Total number of decoded messages by result",
			},
			[]string{"result"},
		),
		Duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "token_decoder_duration_seconds",
				Help:    "Time spent decoding single message in seconds",
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 16), // 1us to ~32ms
			},
		),
		Headers: f.NewCounter(
			prometheus.CounterOpts{
				Name: "token_decoder_headers_total",
				Help: "Total number of headers delivered to listeners",
			},
		),
	}
}

func (m *Metrics) observe(err error, d time.Duration, headers int) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(resultLabel(err)).Inc()
	m.Duration.Observe(d.Seconds())
	m.Headers.Add(float64(headers))
}

var resultErrors = []struct {
	err   error
	label string
}{
	{ErrTruncatedInput, "truncated"},
	{ErrUnknownDictionarySignature, "unknown_dictionary"},
	{ErrMalformedDictionaryReference, "bad_reference"},
	{ErrInvalidHeaderContext, "bad_header"},
	{ErrUnsupportedStartLine, "bad_start_line"},
	{ErrLazyParseUnsupported, "lazy_parse"},
	{ErrUnsupportedSdpToken, "bad_sdp"},
	{ErrMalformedBody, "bad_body"},
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range resultErrors {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "error"
}
