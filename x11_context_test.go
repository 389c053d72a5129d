//go:build linux || freebsd

package windc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdoptNilXlibDisplay(t *testing.T) {
	ctx, err := NewContextFromXlibDisplay(0)
	require.Error(t, err)
	assert.Nil(t, ctx)
	assert.Equal(t, InvalidArgument("nil display"), err)
}
