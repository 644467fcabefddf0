package shift

import (
	"testing"

	"github.com/username/factorial-shifts/internal/config"
	"github.com/username/factorial-shifts/pkg/random"
)

func newTestCalculator(t *testing.T, src random.Source) *Calculator {
	t.Helper()

	calc, err := NewCalculator(config.Default().Shift, src)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	return calc
}

func TestPlan_FixedOffsetZero(t *testing.T) {
	calc := newTestCalculator(t, random.Fixed(0))

	plan, err := calc.Plan("2025-03-10", 42)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"morning clock-in", plan.Morning.ClockInString(), "2025-03-10T08:30:00+01:00"},
		{"morning clock-out", plan.Morning.ClockOutString(), "2025-03-10T13:00:00+01:00"},
		{"afternoon clock-in", plan.Afternoon.ClockInString(), "2025-03-10T14:00:00+01:00"},
		{"afternoon clock-out", plan.Afternoon.ClockOutString(), "2025-03-10T17:30:00+01:00"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	if plan.Morning.Minutes() != 270 {
		t.Errorf("morning minutes = %d, want 270", plan.Morning.Minutes())
	}
	if plan.Afternoon.Minutes() != 210 {
		t.Errorf("afternoon minutes = %d, want 210", plan.Afternoon.Minutes())
	}
	if plan.OffsetMinutes != 0 {
		t.Errorf("OffsetMinutes = %d, want 0", plan.OffsetMinutes)
	}
	if plan.Morning.EmployeeID != 42 || plan.Afternoon.EmployeeID != 42 {
		t.Errorf("EmployeeID = %d/%d, want 42", plan.Morning.EmployeeID, plan.Afternoon.EmployeeID)
	}
	if plan.Morning.Date != "2025-03-10" || plan.Afternoon.Date != "2025-03-10" {
		t.Errorf("Date = %q/%q, want 2025-03-10", plan.Morning.Date, plan.Afternoon.Date)
	}
}

func TestPlan_FixedOffsets(t *testing.T) {
	tests := []struct {
		name             string
		offset           int
		wantClockIn      string
		wantAfternoonEnd string
	}{
		{"offset 15", 15, "2025-03-10T08:45:00+01:00", "2025-03-10T17:45:00+01:00"},
		{"offset 37", 37, "2025-03-10T09:07:00+01:00", "2025-03-10T18:07:00+01:00"},
		{"offset 60", 60, "2025-03-10T09:30:00+01:00", "2025-03-10T18:30:00+01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t, random.Fixed(tt.offset))

			plan, err := calc.Plan("2025-03-10", 1)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}

			if got := plan.Morning.ClockInString(); got != tt.wantClockIn {
				t.Errorf("morning clock-in = %q, want %q", got, tt.wantClockIn)
			}
			if got := plan.Afternoon.ClockOutString(); got != tt.wantAfternoonEnd {
				t.Errorf("afternoon clock-out = %q, want %q", got, tt.wantAfternoonEnd)
			}
			if plan.TotalMinutes() != 480 {
				t.Errorf("TotalMinutes() = %d, want 480", plan.TotalMinutes())
			}
		})
	}
}

func TestPlan_RandomOffsetInvariants(t *testing.T) {
	calc := newTestCalculator(t, random.NewSource())

	dates := []string{"2025-03-10", "2024-02-29", "2025-10-26", "2025-12-31"}
	for _, date := range dates {
		for i := 0; i < 200; i++ {
			plan, err := calc.Plan(date, 7)
			if err != nil {
				t.Fatalf("Plan(%q) error = %v", date, err)
			}

			if plan.OffsetMinutes < 0 || plan.OffsetMinutes > 60 {
				t.Fatalf("OffsetMinutes = %d, want range [0, 60]", plan.OffsetMinutes)
			}
			if !plan.Morning.ClockIn.Before(plan.Morning.ClockOut) {
				t.Fatalf("morning clock-in %v not before clock-out %v", plan.Morning.ClockIn, plan.Morning.ClockOut)
			}
			if !plan.Afternoon.ClockIn.Before(plan.Afternoon.ClockOut) {
				t.Fatalf("afternoon clock-in %v not before clock-out %v", plan.Afternoon.ClockIn, plan.Afternoon.ClockOut)
			}
			if got := plan.Morning.ClockOutString(); got != date+"T13:00:00+01:00" {
				t.Fatalf("morning clock-out = %q, want %sT13:00:00+01:00", got, date)
			}
			if got := plan.Afternoon.ClockInString(); got != date+"T14:00:00+01:00" {
				t.Fatalf("afternoon clock-in = %q, want %sT14:00:00+01:00", got, date)
			}
			if plan.TotalMinutes() != 480 {
				t.Fatalf("TotalMinutes() = %d, want 480", plan.TotalMinutes())
			}
		}
	}
}

func TestPlan_InvalidDate(t *testing.T) {
	calc := newTestCalculator(t, random.Fixed(0))

	for _, date := range []string{"", "2025-13-01", "10/03/2025", "2025-02-30"} {
		if _, err := calc.Plan(date, 1); err == nil {
			t.Errorf("Plan(%q) expected error, got nil", date)
		}
	}
}

func TestPlan_CustomShape(t *testing.T) {
	cfg := config.Default().Shift
	cfg.MorningStart = "07:00"
	cfg.MorningEnd = "12:00"
	cfg.AfternoonStart = "12:30"
	cfg.MaxOffsetMinutes = 30
	cfg.WorkdayMinutes = 450
	cfg.UTCOffset = "+02:00"

	calc, err := NewCalculator(cfg, random.Fixed(10))
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}

	plan, err := calc.Plan("2025-06-02", 5)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	// Morning 07:10-12:00 = 290 minutes, afternoon 12:30 + 160 = 15:10
	if got, want := plan.Morning.ClockInString(), "2025-06-02T07:10:00+02:00"; got != want {
		t.Errorf("morning clock-in = %q, want %q", got, want)
	}
	if got, want := plan.Afternoon.ClockOutString(), "2025-06-02T15:10:00+02:00"; got != want {
		t.Errorf("afternoon clock-out = %q, want %q", got, want)
	}
	if plan.TotalMinutes() != 450 {
		t.Errorf("TotalMinutes() = %d, want 450", plan.TotalMinutes())
	}
}

func TestNewCalculator_RejectsUnsafeShape(t *testing.T) {
	cfg := config.Default().Shift
	cfg.MaxOffsetMinutes = 300 // 08:30 + 300 minutes is past 13:00

	if _, err := NewCalculator(cfg, random.Fixed(0)); err == nil {
		t.Error("NewCalculator() expected error for offset past morning end, got nil")
	}
}

func TestPlan_Windows(t *testing.T) {
	calc := newTestCalculator(t, random.Fixed(0))

	plan, err := calc.Plan("2025-03-10", 1)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	windows := plan.Windows()
	if len(windows) != 2 {
		t.Fatalf("Windows() len = %d, want 2", len(windows))
	}
	if !windows[0].ClockIn.Before(windows[1].ClockIn) {
		t.Error("Windows() not in chronological order")
	}
}
