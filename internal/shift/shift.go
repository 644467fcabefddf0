package shift

import (
	"fmt"
	"time"

	"github.com/username/factorial-shifts/internal/config"
	"github.com/username/factorial-shifts/pkg/dateutil"
	"github.com/username/factorial-shifts/pkg/random"
)

// Window is one attendance segment submitted to Factorial
type Window struct {
	Date       string // YYYY-MM-DD
	ClockIn    time.Time
	ClockOut   time.Time
	EmployeeID int
}

// Minutes returns the worked minutes of the window
func (w Window) Minutes() int {
	return dateutil.MinutesBetween(w.ClockIn, w.ClockOut)
}

// ClockInString returns the clock-in timestamp as sent to the API
func (w Window) ClockInString() string {
	return dateutil.FormatISO8601(w.ClockIn)
}

// ClockOutString returns the clock-out timestamp as sent to the API
func (w Window) ClockOutString() string {
	return dateutil.FormatISO8601(w.ClockOut)
}

// Plan holds the morning and afternoon windows computed for one date
type Plan struct {
	Morning       Window
	Afternoon     Window
	OffsetMinutes int // random delay applied to the morning clock-in
}

// Windows returns the windows in submission order
func (p *Plan) Windows() []Window {
	return []Window{p.Morning, p.Afternoon}
}

// TotalMinutes returns the worked minutes across both windows
func (p *Plan) TotalMinutes() int {
	return p.Morning.Minutes() + p.Afternoon.Minutes()
}

// Calculator turns a calendar date into a Plan
type Calculator struct {
	cfg config.ShiftConfig
	loc *time.Location
	src random.Source
}

// NewCalculator creates a calculator for the given day shape.
// src picks the morning offset; pass random.Fixed to make plans deterministic.
func NewCalculator(cfg config.ShiftConfig, src random.Source) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if src == nil {
		src = random.NewSource()
	}

	return &Calculator{
		cfg: cfg,
		loc: loc,
		src: src,
	}, nil
}

// Plan computes both windows for date (YYYY-MM-DD).
// Morning: morning_start + offset .. morning_end.
// Afternoon: afternoon_start .. afternoon_start + (workday - morning minutes).
func (c *Calculator) Plan(date string, employeeID int) (*Plan, error) {
	day, err := dateutil.ParseDate(date, c.loc)
	if err != nil {
		return nil, err
	}

	morningStart, err := dateutil.AtClock(day, c.cfg.MorningStart)
	if err != nil {
		return nil, fmt.Errorf("shift.morning_start: %w", err)
	}
	morningEnd, err := dateutil.AtClock(day, c.cfg.MorningEnd)
	if err != nil {
		return nil, fmt.Errorf("shift.morning_end: %w", err)
	}
	afternoonStart, err := dateutil.AtClock(day, c.cfg.AfternoonStart)
	if err != nil {
		return nil, fmt.Errorf("shift.afternoon_start: %w", err)
	}

	offset := random.Between(c.src, 0, c.cfg.MaxOffsetMinutes)
	clockIn := morningStart.Add(time.Duration(offset) * time.Minute)

	morningMinutes := dateutil.MinutesBetween(clockIn, morningEnd)
	afternoonMinutes := c.cfg.WorkdayMinutes - morningMinutes
	afternoonEnd := afternoonStart.Add(time.Duration(afternoonMinutes) * time.Minute)

	plan := &Plan{
		Morning: Window{
			Date:       date,
			ClockIn:    clockIn,
			ClockOut:   morningEnd,
			EmployeeID: employeeID,
		},
		Afternoon: Window{
			Date:       date,
			ClockIn:    afternoonStart,
			ClockOut:   afternoonEnd,
			EmployeeID: employeeID,
		},
		OffsetMinutes: offset,
	}

	return plan, nil
}
