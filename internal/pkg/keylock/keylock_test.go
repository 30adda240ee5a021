package keylock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"foodorder/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_SameKeyIsExclusive(t *testing.T) {
	l := keylock.New()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("order-1")
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, l.Len())
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := keylock.New()

	unlockA := l.Lock("order-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("order-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "lock on a different key blocked")
	}
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	l := keylock.New()

	unlock := l.Lock("order-1")
	unlock()
	unlock()

	assert.Equal(t, 0, l.Len())

	unlock = l.Lock("order-1")
	defer unlock()
	assert.Equal(t, 1, l.Len())
}
