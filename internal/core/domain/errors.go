package domain

import "errors"

// Domain errors represent the failure classes a collection run can hit.
// Adapters wrap these with context using fmt.Errorf("...: %w", err) so
// callers can classify failures with errors.Is.
var (
	// ErrConfiguration indicates missing or invalid settings or credentials.
	// Fatal for the whole run; raised before any API call.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates the upstream rejected the credentials.
	// Fatal for the whole run since no community could proceed.
	ErrAuthentication = errors.New("authentication error")

	// ErrFetch indicates a network, rate-limit or API failure while
	// listing posts or retrieving comments. Recoverable per community.
	ErrFetch = errors.New("fetch error")

	// ErrIO indicates the output directory or file could not be written.
	// Recoverable per community.
	ErrIO = errors.New("io error")

	// ErrRateLimited indicates the API rate limit was exceeded and
	// retries were exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates a requested community or post does not exist
	// or is not visible to the authenticated account.
	ErrNotFound = errors.New("not found")
)

// Error kind names shown to users.
const (
	KindConfiguration  = "ConfigurationError"
	KindAuthentication = "AuthenticationError"
	KindFetch          = "FetchError"
	KindIO             = "IOError"
	KindUnknown        = "Error"
)

// ErrorKind classifies err into one of the user-facing kinds.
// Authentication is checked first because auth failures surfacing from
// the transport are also fetch failures.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrFetch), errors.Is(err, ErrRateLimited), errors.Is(err, ErrNotFound):
		return KindFetch
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}

// IsFatal reports whether err must abort the entire run rather than just
// the community being processed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrAuthentication)
}
