package factorial

import "errors"

var (
	// ErrAuthPage means the login page could not be fetched or carried no anti-forgery token
	ErrAuthPage = errors.New("login page unavailable")

	// ErrLoginFailed means the credential POST was rejected
	ErrLoginFailed = errors.New("login failed")

	// ErrSubmissionFailed means an attendance shift mutation was not applied
	ErrSubmissionFailed = errors.New("attendance shift submission failed")
)
