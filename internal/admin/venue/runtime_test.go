package venue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpanHoursWrapsMidnight(t *testing.T) {
	t.Parallel()

	require.Equal(t, 6.0, SpanHours("20:00", "02:00"))
	require.Equal(t, 8.0, SpanHours("19:00", "03:00"))
	require.Equal(t, 3.5, SpanHours("18:00", "21:30"))
	require.Equal(t, 24.0, SpanHours("20:00", "20:00"))
	require.Zero(t, SpanHours("bad", "02:00"))
}

func TestRuntimeDefaultsAndToday(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	rt := Runtime{
		Clock:    func() time.Time { return time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC) },
		Location: tokyo,
	}.WithDefaults()

	require.NotNil(t, rt.Logger)
	require.Equal(t, "2024-01-16", rt.Today())

	at, ok := ClockOn(rt.Now(), "20:00")
	require.True(t, ok)
	require.Equal(t, 20, at.Hour())
	require.Equal(t, tokyo, at.Location())

	_, ok = ClockOn(rt.Now(), "")
	require.False(t, ok)
}
