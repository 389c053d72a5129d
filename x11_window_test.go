//go:build linux || freebsd

package windc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpacityCardinal(t *testing.T) {
	assert.Equal(t, uint64(0), opacityCardinal(0))
	assert.Equal(t, uint64(0xFFFFFFFF), opacityCardinal(1))
	// Nearest step, not truncation.
	assert.Equal(t, uint64(0x80000000), opacityCardinal(0.5))
}
