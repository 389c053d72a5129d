package windc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorEquality(t *testing.T) {
	assert.Equal(t, Unsupported("no"), Unsupported("no"))
	assert.NotEqual(t, Unsupported("no"), Failed("no"))
	assert.NotEqual(t, Failed("a"), Failed("b"))
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, Unsupported("missing extension"), "unsupported: missing extension")
	assert.EqualError(t, InvalidArgument("bad size"), "invalid argument: bad size")
	assert.EqualError(t, Failedf("op %d failed", 3), "failed: op 3 failed")
	assert.EqualError(t, Error{Kind: ErrFailed}, "failed")
}

func TestDeviceErrors(t *testing.T) {
	instant := EventInstant{Source: InstantSourceLinuxInput, Micros: 17}
	err := errDeviceDisconnected(&instant)
	var de *DeviceError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, DeviceDisconnected, de.Kind)
	assert.Equal(t, &instant, de.Instant)
	assert.EqualError(t, err, "device disconnected")

	err = errDeviceNotSupported("no rumble support")
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, DeviceNotSupported, de.Kind)
	assert.EqualError(t, err, "not supported by device: no rumble support")
}

func TestDeviceErrorUnwrap(t *testing.T) {
	inner := Failed("ioctl rejected")
	err := &DeviceError{Kind: DeviceOther, Err: inner}
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.EqualError(t, err, "failed: ioctl rejected")
}
