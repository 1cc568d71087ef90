package hyperloglog

import "errors"

// Sentinel error kinds. Callers should match against these with errors.Is
// rather than comparing error strings.
var (
	// ErrInvalidPrecision is returned when a precision value outside
	// [4, 18] is used at construction or deserialization.
	ErrInvalidPrecision = errors.New("hyperloglog: precision out of range [4, 18]")

	// ErrIncompatiblePrecision is returned by Merge when the two sketches
	// don't share a precision, or by UnmarshalBinary/ReadFrom when a
	// payload's length disagrees with its declared precision.
	ErrIncompatiblePrecision = errors.New("hyperloglog: incompatible precision")

	// ErrCorruptPayload is returned by UnmarshalBinary/ReadFrom when a
	// register value is outside its legal range, or the input is
	// truncated.
	ErrCorruptPayload = errors.New("hyperloglog: corrupt payload")
)
