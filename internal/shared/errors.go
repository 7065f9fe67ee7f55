package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrStatusFetch      = fmt.Errorf("login status fetch failed")

	// Playlist and transfer errors
	ErrFetchFailed        = fmt.Errorf("playlist fetch failed")
	ErrDecodeFailed       = fmt.Errorf("playlist decode failed")
	ErrUnsupported        = fmt.Errorf("provider has no playlist endpoint")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
