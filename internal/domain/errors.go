package domain

import "errors"

// ResolveError reports that no usable schedule source could be found for a
// venue. It never aborts the run; the caller falls back to the previous state.
type ResolveError struct {
	Venue string // internal venue identifier
	Key   string // schedule dataset key
	Err   error  // underlying cause
}

func (e *ResolveError) Error() string {
	return "resolve venue [" + e.Venue + " " + e.Key + "]: " + e.Err.Error()
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// NewResolveError wraps a resolution failure with its venue context.
func NewResolveError(venue, key string, err error) *ResolveError {
	return &ResolveError{Venue: venue, Key: key, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrNoToken is returned when no schedule token exists for a venue key
	// in either the aggregated dataset or the defaults file.
	ErrNoToken = errors.New("no usable schedule token")

	// ErrCalendarUnavailable is returned when the live trading-calendar
	// lookup fails or no calendar collaborator is configured.
	ErrCalendarUnavailable = errors.New("trading calendar unavailable")

	// ErrConfigNotFound is returned when a configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
