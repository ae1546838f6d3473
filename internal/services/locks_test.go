package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDLocker_SerializesPerID(t *testing.T) {
	locker := newIDLocker()

	const workers = 16
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locker.lock(42)
			defer locker.unlock(42)
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestIDLocker_IndependentIDs(t *testing.T) {
	locker := newIDLocker()

	locker.lock(1)
	// A different id must not block
	done := make(chan struct{})
	go func() {
		locker.lock(2)
		locker.unlock(2)
		close(done)
	}()
	<-done
	locker.unlock(1)
}

func TestIDLocker_CleansUpEntries(t *testing.T) {
	locker := newIDLocker()

	locker.lock(7)
	locker.unlock(7)

	locker.mu.Lock()
	defer locker.mu.Unlock()
	require.Empty(t, locker.locks, "released entries should be removed")
}
