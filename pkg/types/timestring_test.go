package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"08:00", false},
		{"23:59", false},
		{"00:00", false},
		{"24:00", true},
		{"8:00", true},
		{"08:60", true},
		{"", true},
		{"abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("08:30")

	result, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:15"), result)

	result, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:00"), result)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	instant, err := TimeString("08:30").OnDate(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC), instant)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, m)
}
