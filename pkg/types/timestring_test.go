package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "24:00", "12:60", "9:30", "09-30", "09:30:00", "ab:cd"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	m, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("25:00").Minutes()
	assert.Error(t, err)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), ts)

	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	// Выход за пределы суток
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30"))
	assert.Equal(t, TimeString("09:30"), ts)

	// Колонки типа time приходят с секундами
	require.NoError(t, ts.Scan("14:05:00"))
	assert.Equal(t, TimeString("14:05"), ts)

	require.NoError(t, ts.Scan([]byte("23:59")))
	assert.Equal(t, TimeString("23:59"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 10, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
