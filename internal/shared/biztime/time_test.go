package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	require.NoError(t, Init("America/Sao_Paulo"))

	ts := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "10/03/2025 12:30", FormatDateTime(ts))
	assert.Equal(t, "10/03/2025", FormatDate(ts))
	assert.Equal(t, "-", FormatDateTime(time.Time{}))
}

func TestInit_InvalidTimezone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus_Mons"))
}
