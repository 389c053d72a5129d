package windc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventQueueOrder(t *testing.T) {
	var q eventQueue
	q.push(WindowShownEvent{Window: 1})
	q.push(WindowMovedEvent{Window: 1})
	q.push(WindowHiddenEvent{Window: 1})
	assert.Equal(t, 3, q.len())

	e, ok := q.pop()
	assert.True(t, ok)
	assert.IsType(t, WindowShownEvent{}, e)
	e, _ = q.pop()
	assert.IsType(t, WindowMovedEvent{}, e)
	e, _ = q.pop()
	assert.IsType(t, WindowHiddenEvent{}, e)

	_, ok = q.pop()
	assert.False(t, ok)
}

func TestDurationSince(t *testing.T) {
	a := instantFromMicros(InstantSourceLinuxInput, 1_000_000)
	b := instantFromMicros(InstantSourceLinuxInput, 3_500_000)

	d, ok := b.DurationSince(a)
	assert.True(t, ok)
	assert.Equal(t, 2500*time.Millisecond, d)

	// Reversed order is not an elapsed time.
	_, ok = a.DurationSince(b)
	assert.False(t, ok)

	// Different clocks never compare.
	c := instantFromMicros(InstantSourceUdev, 2_000_000)
	_, ok = b.DurationSince(c)
	assert.False(t, ok)

	// Zero-value instants have no clock.
	_, ok = EventInstant{}.DurationSince(EventInstant{})
	assert.False(t, ok)
}

func TestInstantFromX11Millis(t *testing.T) {
	i := instantFromX11Millis(250)
	assert.Equal(t, InstantSourceX11, i.Source)
	assert.Equal(t, int64(250_000), i.Micros)
}

func TestDeviceTokens(t *testing.T) {
	var g deviceTokens
	a := g.nextToken()
	b := g.nextToken()
	assert.NotEqual(t, a, b)

	// The counter wraps without panicking.
	g.next = ^uint32(0)
	last := g.nextToken()
	first := g.nextToken()
	assert.Equal(t, DeviceToken(^uint32(0)), last)
	assert.Equal(t, DeviceToken(0), first)
}

func TestMouseButtonExtra(t *testing.T) {
	assert.NotEqual(t, MouseButtonExtra(1), MouseButtonExtra(2))
	assert.True(t, MouseButtonExtra(1) > MouseButtonForward)
}
