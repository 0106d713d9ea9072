package plexwebsocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrier(t *testing.T) {
	r := newRetrier(time.Second, 30*time.Second)

	var intervals []time.Duration
	for range 7 {
		intervals = append(intervals, r.next())
	}
	assert.Equal(t, []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}, intervals)

	r.reset()
	assert.Equal(t, time.Second, r.next())
}

func TestRetrier_Wait(t *testing.T) {
	r := newRetrier(time.Millisecond, time.Millisecond)
	assert.True(t, r.wait(context.Background()))

	// cancellation interrupts a pending wait
	r = newRetrier(time.Hour, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	assert.False(t, r.wait(ctx))
	assert.Less(t, time.Since(start), time.Minute)
}
