package sip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Thu, 01 Jan 1970 00:00:00 GMT", FormatDate(0))
	assert.Equal(t, "Sun, 09 Sep 2001 01:46:40 GMT", FormatDate(1000000000))

	tm, err := ParseDate("Sun, 09 Sep 2001 01:46:40 GMT")
	require.NoError(t, err)
	assert.Equal(t, int64(1000000000), tm.Unix())
}
