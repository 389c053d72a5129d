package windc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecision(t *testing.T) {
	d := Auto[int]()
	assert.True(t, d.IsAuto())
	_, ok := d.Value()
	assert.False(t, ok)
	assert.Equal(t, 7, d.Or(7))

	d = Manual(3)
	assert.False(t, d.IsAuto())
	v, ok := d.Value()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, d.Or(7))
}

func TestKnowledge(t *testing.T) {
	k := Unknown[string]()
	assert.False(t, k.IsKnown())
	assert.Equal(t, "fallback", k.Or("fallback"))

	k = Known("value")
	assert.True(t, k.IsKnown())
	v, ok := k.Value()
	assert.True(t, ok)
	assert.Equal(t, "value", v)
	assert.Equal(t, "value", k.Or("fallback"))
}

func TestTimeout(t *testing.T) {
	inf := TimeoutInfinite()
	assert.True(t, inf.IsInfinite())
	_, ok := inf.Duration()
	assert.False(t, ok)

	bounded := TimeoutAfter(50 * time.Millisecond)
	assert.False(t, bounded.IsInfinite())
	d, ok := bounded.Duration()
	assert.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, d)
}
