package service

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetGuardRejectsConcurrentTarget(t *testing.T) {
	g := NewTargetGuard()

	release, err := g.Acquire("compose-1")
	require.NoError(t, err)
	assert.True(t, g.Busy("compose-1"))

	_, err = g.Acquire("compose-1")
	assert.ErrorIs(t, err, ErrTargetBusy)

	other, err := g.Acquire("compose-2")
	require.NoError(t, err)
	other()

	release()
	release()
	assert.False(t, g.Busy("compose-1"))

	again, err := g.Acquire("compose-1")
	require.NoError(t, err)
	again()
}

func TestTargetGuardEmptyTargetUnguarded(t *testing.T) {
	g := NewTargetGuard()

	r1, err := g.Acquire("")
	require.NoError(t, err)
	r2, err := g.Acquire("")
	require.NoError(t, err)
	r1()
	r2()
}

func TestTargetGuardSingleWinner(t *testing.T) {
	g := NewTargetGuard()

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		start   = make(chan struct{})
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := g.Acquire("same"); err == nil {
				winners.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
