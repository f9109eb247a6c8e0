package systemid

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Resolver.Resolve] and recorded in
// [Diagnostics.Errors].
var (
	// ErrUnavailable is returned when no strategy in the chain produced an
	// identifier.
	ErrUnavailable = errors.New("machine identity unavailable")

	// ErrMalformed is returned when a source was read but its content does
	// not parse as the expected integer, UUID or text.
	ErrMalformed = errors.New("malformed identity value")

	// ErrUnexpectedLength is returned when a native call reports a written
	// length that cannot hold a valid value.
	ErrUnexpectedLength = errors.New("unexpected value length")

	// ErrNoSerialNumbers is returned when the hardware property database
	// holds no serial number entries.
	ErrNoSerialNumbers = errors.New("no serial numbers found")

	// ErrNotSupported is returned by strategies that cannot work on the
	// running platform.
	ErrNotSupported = errors.New("not supported on this platform")
)

// StrategyError records why a strategy produced no result.
// Use [errors.As] to extract the strategy name from diagnostics.
type StrategyError struct {
	Strategy StrategyName // strategy name, e.g. "dbus-machine-id"
	Err      error        // underlying error
}

// Error returns a human-readable description of the strategy failure.
func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %q: %v", e.Strategy, e.Err)
}

// Unwrap returns the underlying error.
func (e *StrategyError) Unwrap() error {
	return e.Err
}

// ParseError records a failure while parsing a value read from a source.
type ParseError struct {
	Source string // data source, e.g. "/etc/machine-id", "kern.hostuuid"
	Err    error  // underlying parse error
}

// Error returns a human-readable description of the parse failure.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NativeCallError records a native call that returned a failure code.
type NativeCallError struct {
	Call string // native function, e.g. "sysctl", "kenv", "IOServiceGetMatchingService"
	Code int64  // raw return or errno value
	Err  error  // underlying error, if the call reported one
}

// Error returns a human-readable description of the native call failure.
func (e *NativeCallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("native call %s failed (code %d): %v", e.Call, e.Code, e.Err)
	}

	return fmt.Sprintf("native call %s failed (code %d)", e.Call, e.Code)
}

// Unwrap returns the underlying error.
func (e *NativeCallError) Unwrap() error {
	return e.Err
}
