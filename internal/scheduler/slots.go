package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/classforge/timetable-api/pkg/errors"
)

// SlotGrid is the ordered universe of schedulable slot start times shared by
// every working day. Slots overlapping the lunch window are excluded from the
// schedulable set but kept separately so callers can still display them.
type SlotGrid struct {
	Times       []string
	LunchTimes  []string
	SlotMinutes int
	Warnings    []string
}

// NewSlotGrid partitions [start, end) into lecture-duration slots, removing
// any slot whose start falls inside the lunch window.
func NewSlotGrid(cfg Config) (*SlotGrid, error) {
	if cfg.LectureDuration <= 0 {
		return nil, appErrors.Clone(appErrors.ErrConfig, "lecture duration must be positive")
	}

	start, err := parseClock(cfg.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("invalid start time %q", cfg.StartTime))
	}
	end, err := parseClock(cfg.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("invalid end time %q", cfg.EndTime))
	}
	lunchStart, err := parseClock(cfg.LunchStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("invalid lunch start %q", cfg.LunchStart))
	}
	lunchEnd, err := parseClock(cfg.LunchEnd)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("invalid lunch end %q", cfg.LunchEnd))
	}

	if end <= start {
		return nil, appErrors.Clone(appErrors.ErrConfig, "end time must be after start time")
	}
	if lunchEnd <= lunchStart {
		return nil, appErrors.Clone(appErrors.ErrConfig, "lunch window is inverted")
	}

	grid := &SlotGrid{SlotMinutes: cfg.LectureDuration}

	if lunchStart < start || lunchEnd > end {
		grid.Warnings = append(grid.Warnings, "lunch window extends outside the working day")
	}
	if span := end - start; span%cfg.LectureDuration != 0 {
		grid.Warnings = append(grid.Warnings,
			fmt.Sprintf("working day leaves a %d minute remainder after the last slot", span%cfg.LectureDuration))
	}

	for current := start; current+cfg.LectureDuration <= end; current += cfg.LectureDuration {
		// A slot is unschedulable when any part of it overlaps the lunch
		// window, not just when it starts inside it.
		if current < lunchEnd && current+cfg.LectureDuration > lunchStart {
			grid.LunchTimes = append(grid.LunchTimes, formatClock(current))
			continue
		}
		grid.Times = append(grid.Times, formatClock(current))
	}

	if len(grid.Times) == 0 {
		return nil, appErrors.Clone(appErrors.ErrConfig, "working day yields no schedulable slots")
	}

	return grid, nil
}

// SlotsPerDay returns the number of schedulable slots on a single day.
func (g *SlotGrid) SlotsPerDay() int {
	return len(g.Times)
}

func parseClock(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value out of range in %q", raw)
	}
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
