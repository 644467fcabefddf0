package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/username/factorial-shifts/internal/config"
	"github.com/username/factorial-shifts/internal/factorial"
	"github.com/username/factorial-shifts/internal/shift"
	"github.com/username/factorial-shifts/pkg/dateutil"
	"github.com/username/factorial-shifts/pkg/random"
)

// runner performs one login and the two shift submissions
type runner struct {
	cfg       *config.Config
	logger    *zap.Logger
	out       io.Writer
	src       random.Source     // nil picks a time-seeded source
	transport http.RoundTripper // nil uses http.DefaultTransport
}

func (r *runner) printf(format string, a ...interface{}) {
	fmt.Fprintf(r.out, format, a...)
}

func (r *runner) println(a ...interface{}) {
	fmt.Fprintln(r.out, a...)
}

func (r *runner) run(ctx context.Context, args runArgs, dryRun bool) error {
	calc, err := shift.NewCalculator(r.cfg.Shift, r.src)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	plan, err := calc.Plan(args.Date, args.EmployeeID)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	r.logger.Info("Shift plan computed",
		zap.String("date", args.Date),
		zap.Int("employee_id", args.EmployeeID),
		zap.Int("offset_minutes", plan.OffsetMinutes),
		zap.Int("total_minutes", plan.TotalMinutes()),
		zap.Bool("dry_run", dryRun))

	r.printPlan(plan)

	if day := plan.Morning.ClockIn; dateutil.IsWeekend(day) {
		r.printf("⚠️  %s is a %s\n", args.Date, day.Weekday())
	}

	if dryRun {
		r.println("\n[DRY RUN] No shifts were submitted")
		return nil
	}

	timeout, err := r.cfg.HTTP.GetTimeout()
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	auth := factorial.NewAuthenticator(r.cfg.Factorial, timeout, r.logger, r.out)
	if r.transport != nil {
		auth.SetTransport(r.transport)
	}

	session, err := auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		r.logger.Error("Login failed", zap.Error(err))
		r.println("Login failed. Exiting.")
		return &exitError{code: exitFailure}
	}

	client := factorial.NewClient(r.cfg, r.logger)

	var failed []string
	for _, w := range []struct {
		name   string
		window shift.Window
	}{
		{"morning", plan.Morning},
		{"afternoon", plan.Afternoon},
	} {
		r.printf("Submitting GraphQL mutation to create attendance shift (%s %s - %s)...\n",
			w.name, w.window.ClockIn.Format("15:04"), w.window.ClockOut.Format("15:04"))

		created, err := client.CreateAttendanceShift(ctx, session, w.window)
		if err != nil {
			r.logger.Error("Attendance shift not created",
				zap.String("window", w.name),
				zap.Error(err))
			r.println("Failed to create attendance shift.")
			var statusErr *factorial.StatusError
			if errors.As(err, &statusErr) {
				r.printf("Status code: %d\n", statusErr.StatusCode)
			} else {
				r.printf("Reason: %v\n", err)
			}
			failed = append(failed, w.name)
			continue
		}

		r.printf("Attendance shift created successfully! (id %s)\n", created.ID)
	}

	if len(failed) > 0 {
		return &exitError{
			code: exitSubmissionFailed,
			err:  fmt.Errorf("%d of 2 shifts failed: %v", len(failed), failed),
		}
	}

	r.println("\n✅ Both shifts submitted")
	return nil
}

func (r *runner) printPlan(plan *shift.Plan) {
	r.printf("\n📅 Shifts for %s (employee %d)\n", plan.Morning.Date, plan.Morning.EmployeeID)
	r.println("═══════════════════════════════════════════════════════")
	r.printf("  Morning:    %s → %s  (%d min, +%d min offset)\n",
		plan.Morning.ClockInString(), plan.Morning.ClockOutString(),
		plan.Morning.Minutes(), plan.OffsetMinutes)
	r.printf("  Afternoon:  %s → %s  (%d min)\n",
		plan.Afternoon.ClockInString(), plan.Afternoon.ClockOutString(),
		plan.Afternoon.Minutes())
	r.printf("  Total:      %d min (%.1fh)\n\n", plan.TotalMinutes(), float64(plan.TotalMinutes())/60)
}
