package windc

import "fmt"

// ErrorKind classifies a library failure.
type ErrorKind int

const (
	// ErrUnsupported means the platform, build, or server version does
	// not support the operation at all.
	ErrUnsupported ErrorKind = iota
	// ErrInvalidArgument means the arguments are malformed.
	ErrInvalidArgument
	// ErrFailed means the operation is in principle possible but
	// something along the way rejected it.
	ErrFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupported:
		return "unsupported"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrFailed:
		return "failed"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the library-wide error value. Two Errors are equal iff their
// kind and reason are equal.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Reason
}

// Unsupported builds an ErrUnsupported error.
func Unsupported(reason string) error {
	return Error{Kind: ErrUnsupported, Reason: reason}
}

// InvalidArgument builds an ErrInvalidArgument error.
func InvalidArgument(reason string) error {
	return Error{Kind: ErrInvalidArgument, Reason: reason}
}

// Failed builds an ErrFailed error.
func Failed(reason string) error {
	return Error{Kind: ErrFailed, Reason: reason}
}

// Failedf builds an ErrFailed error with a formatted reason.
func Failedf(format string, args ...any) error {
	return Error{Kind: ErrFailed, Reason: fmt.Sprintf(format, args...)}
}

// DeviceErrorKind classifies device-layer failures.
type DeviceErrorKind int

const (
	// DeviceDisconnected means the device is gone.
	DeviceDisconnected DeviceErrorKind = iota
	// DeviceNotSupported means this physical device does not expose the
	// requested feature.
	DeviceNotSupported
	// DeviceOther wraps a library-wide error.
	DeviceOther
)

// DeviceError is returned by device-layer operations.
type DeviceError struct {
	Kind DeviceErrorKind
	// Instant is the timestamp of the last event seen from the device
	// before disconnection, when known.
	Instant *EventInstant
	Reason  string
	Err     error
}

func (e *DeviceError) Error() string {
	switch e.Kind {
	case DeviceDisconnected:
		return "device disconnected"
	case DeviceNotSupported:
		if e.Reason != "" {
			return "not supported by device: " + e.Reason
		}
		return "not supported by device"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "device error"
}

func (e *DeviceError) Unwrap() error { return e.Err }

func errDeviceDisconnected(instant *EventInstant) error {
	return &DeviceError{Kind: DeviceDisconnected, Instant: instant}
}

func errDeviceNotSupported(reason string) error {
	return &DeviceError{Kind: DeviceNotSupported, Reason: reason}
}
