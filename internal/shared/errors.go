package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrConfiguration   = fmt.Errorf("musickit configuration failed")
	ErrMissingDevToken = fmt.Errorf("missing developer token")

	// Authorization errors
	ErrAuthorization = fmt.Errorf("musickit authorization failed")
	ErrSDKNotReady   = fmt.Errorf("musickit not loaded")
	ErrNotConfigured = fmt.Errorf("musickit not configured")
	ErrNotAuthorized = fmt.Errorf("not authorized: no music user token")
	ErrTimeout       = fmt.Errorf("operation timed out")

	// Catalog API errors
	ErrFetch              = fmt.Errorf("catalog API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSummaryNotFound    = fmt.Errorf("replay summary not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
