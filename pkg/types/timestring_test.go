package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		wantErr bool
	}{
		{name: "valid morning", value: "09:30", wantErr: false},
		{name: "valid midnight", value: "00:00", wantErr: false},
		{name: "valid end of day", value: "23:59", wantErr: false},
		{name: "missing leading zero", value: "9:30", wantErr: true},
		{name: "out of range hour", value: "24:00", wantErr: true},
		{name: "out of range minute", value: "10:60", wantErr: true},
		{name: "wrong separator", value: "10-30", wantErr: true},
		{name: "with seconds", value: "10:30:00", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))

	// Лексикографическое сравнение корректно благодаря ведущим нулям
	assert.True(t, TimeString("02:00").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "add hour", value: "10:00", minutes: 60, want: "11:00"},
		{name: "add half hour", value: "10:30", minutes: 30, want: "11:00"},
		{name: "cross hour boundary", value: "10:45", minutes: 30, want: "11:15"},
		{name: "to end of day", value: "23:00", minutes: 59, want: "23:59"},
		{name: "exactly midnight", value: "23:00", minutes: 60, wantErr: ErrTimeOutOfRange},
		{name: "past midnight", value: "23:30", minutes: 60, wantErr: ErrTimeOutOfRange},
		{name: "negative below zero", value: "00:30", minutes: -60, wantErr: ErrTimeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesUntil(t *testing.T) {
	got, err := TimeString("10:00").MinutesUntil("11:30")
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	// Отрицательный результат - other раньше t
	got, err = TimeString("11:30").MinutesUntil("10:00")
	require.NoError(t, err)
	assert.Equal(t, -90, got)

	got, err = TimeString("10:00").MinutesUntil("10:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, TimeString("10:30"), ts)

	// Колонки TIME приходят с секундами
	require.NoError(t, ts.Scan("14:00:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 9, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	_, err = TimeString("25:00").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
