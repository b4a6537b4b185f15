package topology

import (
	"errors"
	"fmt"
	"strings"
)

// Causes of validation failures. Use errors.Is to match them.
var (
	ErrDanglingPort          = errors.New("dangling port")
	ErrMultiplyConnected     = errors.New("request port connected more than once")
	ErrOverlappingRanges     = errors.New("overlapping address ranges")
	ErrEmptyAddressSpace     = errors.New("empty address space")
	ErrUncoveredAddressSpace = errors.New("address ranges do not match system memory")
	ErrCycle                 = errors.New("cycle in request path")
	ErrUnreachableMemory     = errors.New("no path to a memory controller")
	ErrMalformedParam        = errors.New("malformed parameter")
	ErrUnknownMemoryModel    = errors.New("unknown memory model")
	ErrMemModeMismatch       = errors.New("memory mode does not match cpu model")
)

// ErrFrozen is the cause of BuildErrors raised when a validated topology is
// modified.
var ErrFrozen = errors.New("topology is frozen")

// Check names the stage of validation that failed.
type Check string

// Validation stages, in the order they run.
const (
	CheckPorts         Check = "ports"
	CheckAddressRanges Check = "address ranges"
	CheckGraph         Check = "graph"
	CheckParams        Check = "params"
)

// ValidationError reports an inconsistency found by Validate.
type ValidationError struct {
	Check   Check
	Reason  string
	Field   string
	Raw     string
	Devices []string
	Err     error
}

func (e *ValidationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "validation failed (%s): %s", e.Check, e.Reason)

	if e.Field != "" {
		fmt.Fprintf(&b, " [field %s = %q]", e.Field, e.Raw)
	}

	if len(e.Devices) > 0 {
		fmt.Fprintf(&b, " [devices %s]", strings.Join(e.Devices, ", "))
	}

	return b.String()
}

// Unwrap returns the cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildError reports a failure while constructing devices, ports or
// connections.
type BuildError struct {
	Device string
	Port   string
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	subject := e.Device
	if e.Port != "" {
		subject = e.Port
	}

	if subject == "" {
		return "build failed: " + e.Reason
	}

	return fmt.Sprintf("build failed at %s: %s", subject, e.Reason)
}

// Unwrap returns the cause.
func (e *BuildError) Unwrap() error {
	return e.Err
}
