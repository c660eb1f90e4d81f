package jable

import (
	"testing"
	"time"

	"modelwatch/services/catalog"

	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	require.Equal(t, UnitHour, ParseUnit("小時前"))
	require.Equal(t, UnitDay, ParseUnit("天前"))
	require.Equal(t, UnitWeek, ParseUnit("個星期前"))
	require.Equal(t, UnitMonth, ParseUnit("個月前"))
	require.Equal(t, UnitYear, ParseUnit("年前"))
	require.Equal(t, UnitUnknown, ParseUnit("分鐘前"))
	require.Equal(t, UnitUnknown, ParseUnit(""))
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

	require.Equal(t, now.Add(-2*time.Hour), Resolve(now, 2, UnitHour))
	require.Equal(t, now.AddDate(0, 0, -2), Resolve(now, 2, UnitDay))
	require.Equal(t, now.AddDate(0, 0, -7), Resolve(now, 1, UnitWeek))

	// months and years are fixed-length approximations on purpose
	require.Equal(t, now.AddDate(0, 0, -30), Resolve(now, 1, UnitMonth))
	require.Equal(t, now.AddDate(0, 0, -365), Resolve(now, 1, UnitYear))

	// the unknown unit is a silent fallback to now
	require.Equal(t, now, Resolve(now, 5, UnitUnknown))
}

func TestFormatDateRoundTrip(t *testing.T) {
	now := time.Date(2026, 4, 2, 23, 30, 0, 0, time.UTC)
	formatted := FormatDate(now)
	require.Equal(t, "04/02/2026", formatted)

	parsed, err := catalog.ParseUploadTime(formatted)
	require.NoError(t, err)
	require.Equal(t, 2026, parsed.Year())
	require.Equal(t, time.April, parsed.Month())
	require.Equal(t, 2, parsed.Day())
}
