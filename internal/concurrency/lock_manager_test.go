package concurrency

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("alice"), lm.GetLock("alice"))
	assert.NotSame(t, lm.GetLock("alice"), lm.GetLock("bob"))
}

func TestWithLock_Serializes(t *testing.T) {
	lm := NewLockManager()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock("alice", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestWithLock_PropagatesError(t *testing.T) {
	lm := NewLockManager()
	want := errors.New("boom")
	assert.ErrorIs(t, lm.WithLock("alice", func() error { return want }), want)

	// The lock is released after an error
	done := make(chan struct{})
	go func() {
		_ = lm.WithLock("alice", func() error { return nil })
		close(done)
	}()
	<-done
}
