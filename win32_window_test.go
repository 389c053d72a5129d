//go:build windows

package windc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpacityAlphaByte(t *testing.T) {
	assert.Equal(t, byte(0), opacityAlphaByte(0))
	assert.Equal(t, byte(255), opacityAlphaByte(1))
	// Nearest step, not truncation.
	assert.Equal(t, byte(128), opacityAlphaByte(0.5))
}
