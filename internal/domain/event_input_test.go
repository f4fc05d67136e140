package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapacity(t *testing.T) {
	for n := 1; n <= MaxCapacity; n++ {
		got, err := ParseCapacity(fmt.Sprint(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	tests := []struct {
		in   string
		want int
		err  error
	}{
		{in: "NONE", want: 0},
		{in: "none", want: 0},
		{in: " None ", want: 0},
		{in: "05", want: 5},
		{in: "0", err: ErrInvalidCapacity},
		{in: "41", err: ErrInvalidCapacity},
		{in: "-3", err: ErrInvalidCapacity},
		{in: "+3", err: ErrInvalidCapacity},
		{in: "ten", err: ErrInvalidCapacity},
		{in: "3.5", err: ErrInvalidCapacity},
		{in: "", err: ErrInvalidCapacity},
		{in: "99999999999999999999999", err: ErrInvalidCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCapacity(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTitle(t *testing.T) {
	atLimit := strings.Repeat("é", MaxTitleLength)
	got, err := ParseTitle(atLimit)
	require.NoError(t, err)
	assert.Equal(t, atLimit, got)

	_, err = ParseTitle(atLimit + "x")
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestParseDescription(t *testing.T) {
	got, err := ParseDescription("NoNe")
	require.NoError(t, err)
	assert.Empty(t, got)

	atLimit := strings.Repeat("a", MaxDescriptionLength)
	got, err = ParseDescription(atLimit)
	require.NoError(t, err)
	assert.Equal(t, atLimit, got)

	_, err = ParseDescription(atLimit + "a")
	assert.ErrorIs(t, err, ErrInvalidDescription)
}

func TestParseTimeZoneChoice(t *testing.T) {
	zones := []string{"UTC", "Europe/Paris", "Asia/Tokyo"}

	got, err := ParseTimeZoneChoice("2", zones)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", got)

	got, err = ParseTimeZoneChoice(" 3 ", zones)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", got)

	for _, in := range []string{"0", "4", "-1", "one", ""} {
		_, err := ParseTimeZoneChoice(in, zones)
		assert.ErrorIs(t, err, ErrInvalidTimeZone, in)
	}
}

func TestParseStartTime(t *testing.T) {
	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		zone string
		want time.Time
	}{
		{"12 hour", "2024-01-01 5:00 PM", "America/New_York", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)},
		{"12 hour lower case", "2024-01-01 5:00 pm", "America/New_York", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)},
		{"12 hour two digits", "2024-01-01 11:30 AM", "UTC", time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC)},
		{"24 hour", "2024-07-14 21:15", "Europe/Paris", time.Date(2024, 7, 14, 19, 15, 0, 0, time.UTC)},
		{"extra spaces", " 2024-07-14   21:15 ", "Asia/Tokyo", time.Date(2024, 7, 14, 12, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStartTime(tt.in, tt.zone, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseStartTimeRejects(t *testing.T) {
	now := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

	_, err := ParseStartTime("2024-01-01 4:59 PM", "America/New_York", now)
	assert.ErrorIs(t, err, ErrStartTimeInPast)

	// exactly now is still accepted
	_, err = ParseStartTime("2024-01-01 5:00 PM", "America/New_York", now)
	assert.NoError(t, err)

	for _, in := range []string{"tomorrow", "01/02/2024 10:00", "2024-13-01 10:00", "2024-01-01", "2024-01-01 25:00"} {
		_, err := ParseStartTime(in, "UTC", now)
		assert.ErrorIs(t, err, ErrInvalidStartTime, in)
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "invalid_capacity", Code(ErrInvalidCapacity))
	assert.Equal(t, "reply_timeout", Code(fmt.Errorf("description: %w", ErrReplyTimeout)))
	assert.Empty(t, Code(errors.New("boom")))
	assert.Empty(t, Code(nil))
}
