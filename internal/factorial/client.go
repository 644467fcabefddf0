package factorial

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/username/factorial-shifts/internal/config"
	"github.com/username/factorial-shifts/internal/shift"
)

// maxErrorBody caps how much of a failed response ends up in error messages
const maxErrorBody = 512

// Client submits attendance shifts through the Factorial GraphQL API
type Client struct {
	graphqlURL string
	userAgent  string
	appOrigin  string
	attendance config.AttendanceConfig
	logger     *zap.Logger
}

// NewClient creates a new GraphQL client
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		graphqlURL: cfg.Factorial.GraphQLURL,
		userAgent:  cfg.Factorial.UserAgent,
		appOrigin:  cfg.Factorial.AppOrigin,
		attendance: cfg.Attendance,
		logger:     logger,
	}
}

// Variables builds the mutation variables for a window
func (c *Client) Variables(w shift.Window) AttendanceShiftVariables {
	return AttendanceShiftVariables{
		Date:                             w.Date,
		EmployeeID:                       w.EmployeeID,
		ClockIn:                          w.ClockInString(),
		ClockOut:                         w.ClockOutString(),
		ReferenceDate:                    w.Date,
		LocationType:                     c.attendance.LocationType,
		Source:                           c.attendance.Source,
		TimeSettingsBreakConfigurationID: c.attendance.BreakConfigurationID,
		Workable:                         c.attendance.Workable,
		FetchDependencies:                c.attendance.FetchDependencies,
	}
}

// CreateAttendanceShift submits one window. It is attempted exactly once.
// A 2xx response is only a success when neither the GraphQL errors array nor the
// mutation's own errors list is populated.
func (c *Client) CreateAttendanceShift(ctx context.Context, session *Session, w shift.Window) (*AttendanceShift, error) {
	req := GraphQLRequest{
		OperationName: CreateAttendanceShiftOperation,
		Variables:     c.Variables(w),
		Query:         CreateAttendanceShiftMutation,
	}

	var resp createAttendanceShiftResponse
	if err := c.doRequest(ctx, session, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrSubmissionFailed, strings.Join(messages, "; "))
	}

	payload := resp.payload()
	if payload == nil {
		return nil, fmt.Errorf("%w: response carried no createAttendanceShift payload", ErrSubmissionFailed)
	}

	if len(payload.Errors) > 0 {
		messages := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			messages = append(messages, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrSubmissionFailed, strings.Join(messages, "; "))
	}

	if payload.Shift == nil {
		return nil, fmt.Errorf("%w: response carried neither shift nor errors", ErrSubmissionFailed)
	}

	c.logger.Info("Attendance shift created",
		zap.String("shift_id", payload.Shift.ID.String()),
		zap.String("date", w.Date),
		zap.String("clock_in", w.ClockInString()),
		zap.String("clock_out", w.ClockOutString()),
		zap.Int("minutes", w.Minutes()))

	return payload.Shift, nil
}

// doRequest posts a GraphQL document with the session cookies and decodes the response
func (c *Client) doRequest(ctx context.Context, session *Session, body interface{}, result interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Referer", c.appOrigin+"/")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.appOrigin)

	// Execute request
	resp, err := session.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: HTTP request failed: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrSubmissionFailed, err)
	}

	// Check status code
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("GraphQL request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(respBody)))
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(respBody)}
	}

	// Parse response
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: failed to parse response: %v", ErrSubmissionFailed, err)
		}
	}

	return nil
}

// StatusError is returned when the GraphQL endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", ErrSubmissionFailed, e.StatusCode, e.Body)
}

// Unwrap makes errors.Is(err, ErrSubmissionFailed) hold
func (e *StatusError) Unwrap() error {
	return ErrSubmissionFailed
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
