// Package errs defines the sentinel errors returned by the spz packages.
//
// Every failure surfaced by the codec matches one of these sentinels through errors.Is.
// Stream failures (a corrupt or cut-off container, an unrecognized container, a body
// shorter than its header requires) also match ErrIO. Errors that carry a value (a version number, an index, a degree) wrap the
// sentinel with fmt.Errorf so the value stays visible in the message:
//
//	_, err := packed.Decode(data)
//	if errors.Is(err, errs.ErrUnsupportedVersion) {
//	    // ...
//	}
package errs

import (
	"errors"
	"fmt"
)

// Decoding errors.
var (
	ErrDataIsEmpty                         = errors.New("data is empty")
	ErrInvalidHeaderSize                   = errors.New("invalid header size")
	ErrInvalidMagicNumber                  = errors.New("invalid magic number in packed gaussians header")
	ErrUnsupportedVersion                  = errors.New("unsupported version")
	ErrUnsupportedSphericalHarmonicsDegree = errors.New("unsupported spherical harmonics degree")
	ErrHeaderInvalid                       = errors.New("header fails validation")
	ErrInconsistentSizes                   = errors.New("inconsistent sizes")
	ErrIndexOutOfBounds                    = errors.New("index out of bounds")
	ErrInvalidFractionalBits               = errors.New("invalid fractional bits")
)

// Configuration errors.
var (
	ErrInvalidCoordinateSystem = errors.New("invalid coordinate system")
	ErrUnknownCompression      = errors.New("unknown compression type")
	ErrInvalidReadStrategy     = errors.New("invalid read strategy")
)

// ErrIO marks failures of the underlying filesystem, stream or object store.
var ErrIO = errors.New("io error")

// ErrTruncatedPayload reports a body shorter than its header requires. It also matches
// ErrIO, since a short body is an unexpected end of stream.
var ErrTruncatedPayload = fmt.Errorf("%w: truncated payload", ErrIO)

type ioError struct {
	op  string
	err error
}

func (e *ioError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrIO, e.op, e.err)
}

func (e *ioError) Unwrap() []error {
	return []error{ErrIO, e.err}
}

// IO wraps err so that it matches both ErrIO and the original error.
// It returns nil when err is nil.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}

	return &ioError{op: op, err: err}
}
