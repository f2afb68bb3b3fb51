//go:build unix

package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireLockSerialises(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyprgrid.lock")

	release, err := acquireLock(path)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	acquired := make(chan func(), 1)
	go func() {
		r, err := acquireLock(path)
		if err != nil {
			t.Errorf("second acquire: %v", err)
			acquired <- func() {}
			return
		}
		acquired <- r
	}()

	select {
	case <-acquired:
		t.Fatalf("second lock acquired while the first was held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case r := <-acquired:
		r()
	case <-time.After(2 * time.Second):
		t.Fatalf("second lock never acquired after release")
	}
}
