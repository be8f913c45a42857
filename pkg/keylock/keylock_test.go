package keylock

import (
	"sync"
	"testing"
	"time"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	l := New()

	var counter int
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("shp-1")
			defer unlock()
			// Non-atomic increment; only safe if the lock works.
			c := counter
			counter = c + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected counter=50, got %d", counter)
	}
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	l := New()

	unlockA := l.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on key b blocked by lock on key a")
	}
}

func TestKeyLock_ReleaseIdempotent(t *testing.T) {
	l := New()

	unlock := l.Lock("a")
	unlock()
	unlock()

	done := make(chan struct{})
	go func() {
		u := l.Lock("a")
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock not released")
	}
}

func TestKeyLock_EntryDroppedAfterRelease(t *testing.T) {
	l := New()

	unlock := l.Lock("a")
	unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Errorf("expected empty lock table, got %d entries", len(l.locks))
	}
}
