package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindow(t *testing.T) {
	tests := []struct {
		name      string
		fecha     string
		sep       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "current generation separator",
			fecha:     "2024-01-10",
			sep:       "#",
			wantStart: "2024-01-10#00:00:00",
			wantEnd:   "2024-01-10#23:59:59",
		},
		{
			name:      "legacy generation separator",
			fecha:     "2024-01-10",
			sep:       "T",
			wantStart: "2024-01-10T00:00:00",
			wantEnd:   "2024-01-10T23:59:59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := DayWindow(tt.fecha, tt.sep)
			assert.Equal(t, tt.wantStart, win.Start)
			assert.Equal(t, tt.wantEnd, win.End)
		})
	}
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		fecha     string
		sep       string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "leap February",
			fecha:     "2024-02-15",
			sep:       "#",
			wantStart: "2024-02-01#00:00:00",
			wantEnd:   "2024-02-29#23:59:59",
		},
		{
			name:      "non-leap February",
			fecha:     "2023-02-15",
			sep:       "#",
			wantStart: "2023-02-01#00:00:00",
			wantEnd:   "2023-02-28#23:59:59",
		},
		{
			name:      "December rolls into next year",
			fecha:     "2023-12-10",
			sep:       "#",
			wantStart: "2023-12-01#00:00:00",
			wantEnd:   "2023-12-31#23:59:59",
		},
		{
			name:      "thirty-day month with legacy separator",
			fecha:     "2024-04-07",
			sep:       "T",
			wantStart: "2024-04-01T00:00:00",
			wantEnd:   "2024-04-30T23:59:59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, err := MonthWindow(tt.fecha, tt.sep)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, win.Start)
			assert.Equal(t, tt.wantEnd, win.End)
		})
	}
}

func TestMonthWindowInvalidDate(t *testing.T) {
	_, err := MonthWindow("not-a-date", "#")
	assert.Error(t, err)

	_, err = MonthWindow("2024-13-01", "#")
	assert.Error(t, err)
}
