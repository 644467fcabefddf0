package factorial

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleID handles both string and number IDs from the GraphQL API
// Factorial returns id fields as numbers on some types and strings on others
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler for FlexibleID
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}

	// Try to unmarshal as string first
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	// Try as number
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexibleID(strconv.FormatInt(n, 10))
		return nil
	}

	return fmt.Errorf("FlexibleID: cannot unmarshal %s", string(b))
}

// String returns string representation
func (f FlexibleID) String() string {
	return string(f)
}

// GraphQLRequest is the JSON body posted to the GraphQL endpoint
type GraphQLRequest struct {
	OperationName string      `json:"operationName"`
	Variables     interface{} `json:"variables"`
	Query         string      `json:"query"`
}

// AttendanceShiftVariables are the variables of CreateAttendanceShiftMutation
type AttendanceShiftVariables struct {
	Date                             string `json:"date"`
	EmployeeID                       int    `json:"employeeId"`
	ClockIn                          string `json:"clockIn"`
	ClockOut                         string `json:"clockOut"`
	ReferenceDate                    string `json:"referenceDate"`
	LocationType                     string `json:"locationType"`
	Source                           string `json:"source"`
	TimeSettingsBreakConfigurationID int    `json:"timeSettingsBreakConfigurationId"`
	Workable                         bool   `json:"workable"`
	FetchDependencies                bool   `json:"fetchDependencies"`
}

// GraphQLError is an entry of the top-level errors array
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// MutationError is a SimpleError or StructuredError returned inside the mutation payload
type MutationError struct {
	Typename string   `json:"__typename"`
	Message  string   `json:"message,omitempty"` // SimpleError
	Type     string   `json:"type,omitempty"`    // SimpleError
	Field    string   `json:"field,omitempty"`   // StructuredError
	Messages []string `json:"messages,omitempty"`
}

// String renders the error the way the web app shows it
func (e MutationError) String() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Messages, ", "))
	case e.Type != "" && e.Message != "":
		return fmt.Sprintf("%s (%s)", e.Message, e.Type)
	case e.Message != "":
		return e.Message
	default:
		return e.Typename
	}
}

// AttendanceShift is the subset of TimesheetPageShift this tool reads back
type AttendanceShift struct {
	ID           FlexibleID `json:"id"`
	Date         string     `json:"date"`
	ClockIn      string     `json:"clockIn"`
	ClockOut     string     `json:"clockOut"`
	EmployeeID   FlexibleID `json:"employeeId"`
	LocationType string     `json:"locationType"`
	Minutes      int        `json:"minutes"`
	Workable     bool       `json:"workable"`
}

// CreateAttendanceShiftPayload is the createAttendanceShift field of the response
type CreateAttendanceShiftPayload struct {
	Errors []MutationError  `json:"errors"`
	Shift  *AttendanceShift `json:"shift"`
}

type createAttendanceShiftResponse struct {
	Data *struct {
		AttendanceMutations *struct {
			CreateAttendanceShift *CreateAttendanceShiftPayload `json:"createAttendanceShift"`
		} `json:"attendanceMutations"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// payload returns the mutation payload or nil when the response carried no data
func (r *createAttendanceShiftResponse) payload() *CreateAttendanceShiftPayload {
	if r.Data == nil || r.Data.AttendanceMutations == nil {
		return nil
	}
	return r.Data.AttendanceMutations.CreateAttendanceShift
}
