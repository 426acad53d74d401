package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() Config {
	return Config{
		WorkingDays:     []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		LectureDuration: 60,
		StartTime:       "09:00",
		EndTime:         "15:00",
		LunchStart:      "12:00",
		LunchEnd:        "13:00",
	}
}

func TestNewSlotGridExcludesLunch(t *testing.T) {
	grid, err := NewSlotGrid(defaultTestConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00", "14:00"}, grid.Times)
	assert.Equal(t, []string{"12:00"}, grid.LunchTimes)
	assert.Equal(t, 5, grid.SlotsPerDay())
	assert.Empty(t, grid.Warnings)
}

func TestNewSlotGridExcludesPartialLunchOverlap(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.LunchStart = "11:30"
	cfg.LunchEnd = "12:30"

	grid, err := NewSlotGrid(cfg)
	require.NoError(t, err)

	// 11:00-12:00 and 12:00-13:00 both touch the window; neither survives.
	assert.Equal(t, []string{"09:00", "10:00", "13:00", "14:00"}, grid.Times)
	assert.Equal(t, []string{"11:00", "12:00"}, grid.LunchTimes)
}

func TestNewSlotGridWarnsOnRemainder(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.EndTime = "15:30"

	grid, err := NewSlotGrid(cfg)
	require.NoError(t, err)
	require.Len(t, grid.Warnings, 1)
	assert.Contains(t, grid.Warnings[0], "30 minute remainder")
	// The partial slot is dropped, not shortened.
	assert.Equal(t, 5, grid.SlotsPerDay())
}

func TestNewSlotGridWarnsWhenLunchOutsideDay(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.LunchStart = "08:00"
	cfg.LunchEnd = "08:30"

	grid, err := NewSlotGrid(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, grid.Warnings)
	assert.Contains(t, grid.Warnings[0], "outside the working day")
}

func TestNewSlotGridRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"malformed clock", func(c *Config) { c.StartTime = "nine" }},
		{"inverted day", func(c *Config) { c.EndTime = "08:00" }},
		{"inverted lunch", func(c *Config) { c.LunchStart = "13:00"; c.LunchEnd = "12:00" }},
		{"zero duration", func(c *Config) { c.LectureDuration = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			tc.mutate(&cfg)
			_, err := NewSlotGrid(cfg)
			require.Error(t, err)
		})
	}
}

func TestNewSlotGridRejectsAllLunchDay(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.StartTime = "12:00"
	cfg.EndTime = "13:00"

	_, err := NewSlotGrid(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schedulable slots")
}
