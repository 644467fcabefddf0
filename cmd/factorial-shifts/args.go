package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/username/factorial-shifts/internal/config"
)

// basicEmailPattern accepts local@domain.tld without attempting RFC 5322
var basicEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// runArgs is the per-run input taken from flags, env or config
type runArgs struct {
	Email      string `validate:"required,basic_email"`
	Password   string `validate:"required"`
	Date       string `validate:"required,datetime=2006-01-02"`
	EmployeeID int    `validate:"gt=0"`
}

// ArgValidationError reports a bad command-line argument before any network call
type ArgValidationError struct {
	Flag   string
	Reason string
}

func (e *ArgValidationError) Error() string {
	return fmt.Sprintf("invalid --%s: %s", e.Flag, e.Reason)
}

// withDefaults fills arguments not given on the command line from config/env
func (a runArgs) withDefaults(cmd *cobra.Command, creds config.CredentialsConfig) runArgs {
	if !cmd.Flags().Changed("email") && creds.Email != "" {
		a.Email = creds.Email
	}
	if !cmd.Flags().Changed("password") && creds.Password != "" {
		a.Password = creds.Password
	}
	if !cmd.Flags().Changed("employee-id") && creds.EmployeeID != 0 {
		a.EmployeeID = creds.EmployeeID
	}
	return a
}

// Validate checks the arguments and returns the first problem as an *ArgValidationError
func (a runArgs) Validate() error {
	err := argValidator().Struct(a)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	flag := flagName(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ArgValidationError{Flag: flag, Reason: "is required"}
	case "basic_email":
		return &ArgValidationError{Flag: flag, Reason: "invalid email address format"}
	case "datetime":
		return &ArgValidationError{Flag: flag, Reason: "invalid date format, expected YYYY-MM-DD"}
	case "gt":
		return &ArgValidationError{Flag: flag, Reason: "must be a positive integer"}
	default:
		return &ArgValidationError{Flag: flag, Reason: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

func argValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
			return basicEmailPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func flagName(field string) string {
	switch field {
	case "EmployeeID":
		return "employee-id"
	default:
		return strings.ToLower(field)
	}
}
