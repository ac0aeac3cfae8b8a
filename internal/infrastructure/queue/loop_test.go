package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(zerolog.Nop())
	l.Start(ctx)
	t.Cleanup(cancel)
	return l, cancel
}

func TestLoopPreservesPostingOrder(t *testing.T) {
	l, _ := startLoop(t)

	var got []int
	for i := range 100 {
		l.Post(func() { got = append(got, i) })
	}
	var snapshot []int
	require.NoError(t, l.Call(context.Background(), func() { snapshot = append([]int(nil), got...) }))

	require.Len(t, snapshot, 100)
	for i, v := range snapshot {
		assert.Equal(t, i, v)
	}
}

func TestLoopSerialisesConcurrentPosts(t *testing.T) {
	l, _ := startLoop(t)

	counter := 0
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				l.Post(func() { counter++ })
			}
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, l.Call(context.Background(), func() { got = counter }))
	assert.Equal(t, 1000, got)
}

func TestLoopSurvivesPanics(t *testing.T) {
	l, _ := startLoop(t)

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Call(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestCallAfterStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	assert.ErrorIs(t, l.Call(context.Background(), func() {}), ErrStopped)
	l.Post(func() {}) // must not block
}
