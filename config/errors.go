package config

import "fmt"

// ConfigError reports a configuration value that cannot be used and has no
// safe default.
type ConfigError struct {
	Field  string
	Raw    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config error on %s", e.Field)
	if e.Raw != "" {
		msg += fmt.Sprintf(" = %q", e.Raw)
	}

	msg += ": " + e.Reason

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A Warning records an optional field that could not be used and was
// replaced by its default.
type Warning struct {
	Field    string
	Raw      string
	Fallback string
	Reason   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %q %s, using %s instead",
		w.Field, w.Raw, w.Reason, w.Fallback)
}
