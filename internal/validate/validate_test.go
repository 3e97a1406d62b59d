package validate

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	for _, s := range []string{"", " ", "\t\n", "   "} {
		_, err := Username(s)
		assert.ErrorIs(t, err, ErrInvalid, "input %q", s)
	}
	got, err := Username("  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestDescription(t *testing.T) {
	for _, v := range []any{nil, "", 5, json.Number("5"), true, map[string]any{}} {
		_, err := Description(v)
		assert.ErrorIs(t, err, ErrInvalid, "input %#v", v)
	}
	got, err := Description("run")
	require.NoError(t, err)
	assert.Equal(t, "run", got)
}

func TestDuration(t *testing.T) {
	ok := map[any]int64{
		"10":              10,
		" 7 ":             7,
		json.Number("30"): 30,
		float64(45):       45,
		3:                 3,
		"1e1":             10,
	}
	for in, want := range ok {
		got, err := Duration(in)
		require.NoError(t, err, "input %#v", in)
		assert.Equal(t, want, got)
	}

	bad := []any{nil, "", "abc", -1, 0, 2.5, "2.5", json.Number("-3"), true, "NaN", "Infinity", []any{1},
		json.Number("9223372036854775808"), "9223372036854775807", json.Number("9223372036854775296"), float64(1 << 63)}
	for _, in := range bad {
		_, err := Duration(in)
		assert.ErrorIs(t, err, ErrInvalid, "input %#v", in)
	}
}

func TestDate_FormatBeforeCalendar(t *testing.T) {
	err := Date("2021-2-5")
	require.Error(t, err)
	assert.Equal(t, MsgDateFormat, err.Error())

	err = Date("2021-02-30")
	require.Error(t, err)
	assert.Equal(t, MsgDateCalendar, err.Error())

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "date", verr.Field)

	assert.NoError(t, Date("2024-02-29"))
	assert.NoError(t, Date("2023-05-01"))
	assert.Error(t, Date("2023-02-29"))
	assert.Error(t, Date("2023-13-01"))
	assert.Error(t, Date("2023-00-10"))
}

func TestDateFormat_EmptyPasses(t *testing.T) {
	assert.NoError(t, DateFormat(""))
	assert.Error(t, DateFormat("20230501"))
	assert.Error(t, DateFormat("2023-05-01T00:00:00Z"))
}

func TestLimit(t *testing.T) {
	n, err := Limit("")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = Limit(" 3 ")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)

	n, err = Limit("0")
	require.NoError(t, err)
	assert.Equal(t, 0, *n)

	for _, s := range []string{"abc", "1.5", "5abc", "-"} {
		_, err := Limit(s)
		assert.ErrorIs(t, err, ErrInvalid, "input %q", s)
	}
}

func TestLimit_NegativeIsUnlimited(t *testing.T) {
	for _, s := range []string{"-1", " -20 "} {
		n, err := Limit(s)
		require.NoError(t, err, "input %q", s)
		assert.Nil(t, n, "input %q", s)
	}
}

func TestDuration_LargestAccepted(t *testing.T) {
	// 2^62 is exactly representable and well inside int64.
	got, err := Duration(json.Number("4611686018427387904"))
	require.NoError(t, err)
	assert.Equal(t, int64(1<<62), got)
	assert.Positive(t, got)
}

func TestToday_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2023, 5, 2, 5, 0, 0, 0, loc) // 2023-05-01 19:00 UTC
	assert.Equal(t, "2023-05-01", Today(now))
}
