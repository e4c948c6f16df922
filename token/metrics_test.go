package token

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	d := NewDecoder(WithMetrics(m))

	wire := testInvite(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Decode(wire, 0, len(wire), NopListener{}))
	}
	require.Error(t, d.Decode(wire, 0, 30, NopListener{}))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Messages.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Messages.WithLabelValues("truncated")))
	// 8 delivered headers per message, Content-Length is dropped
	assert.Equal(t, 24.0, testutil.ToFloat64(m.Headers))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	// same collectors can not be registered twice
	assert.Panics(t, func() { NewMetrics(reg) })
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe(nil, 0, 1) })
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		err   error
		label string
	}{
		{nil, "ok"},
		{ErrTruncatedInput, "truncated"},
		{&DecodeError{Stage: StageHeaders, Err: ErrInvalidHeaderContext}, "bad_header"},
		{fmt.Errorf("wrap: %w", ErrUnsupportedSdpToken), "bad_sdp"},
		{ErrMalformedBody, "bad_body"},
		{fmt.Errorf("other"), "error"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.label, resultLabel(tc.err))
	}
}
