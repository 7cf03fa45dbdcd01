package api

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubscribeDeliversSnapshots(t *testing.T) {
	var calls atomic.Int32
	sub := subscribe(func() ([]int, error) {
		n := calls.Add(1)
		return []int{int(n)}, nil
	}, 10*time.Millisecond)
	defer sub.Unsubscribe()

	select {
	case snap := <-sub.C:
		if len(snap) != 1 {
			t.Fatalf("unexpected snapshot: %v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot delivered")
	}

	// A later poll delivers a fresh full snapshot.
	select {
	case snap := <-sub.C:
		if snap[0] < 2 {
			t.Errorf("expected a later snapshot, got %v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("no follow-up snapshot delivered")
	}
}

func TestSubscribeLatestSnapshotWins(t *testing.T) {
	var calls atomic.Int32
	sub := subscribe(func() ([]int, error) {
		return []int{int(calls.Add(1))}, nil
	}, 5*time.Millisecond)
	defer sub.Unsubscribe()

	// Let several polls happen without consuming.
	time.Sleep(50 * time.Millisecond)

	snap := <-sub.C
	if snap[0] < 2 {
		t.Errorf("expected the buffered snapshot to be a recent one, got %v", snap)
	}
}

func TestSubscribeSurfacesErrors(t *testing.T) {
	wantErr := errors.New("query failed")
	sub := subscribe(func() ([]int, error) {
		return nil, wantErr
	}, 10*time.Millisecond)
	defer sub.Unsubscribe()

	select {
	case err := <-sub.Errs:
		if !errors.Is(err, wantErr) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("subscription error not surfaced")
	}
}

func TestUnsubscribeStopsPolling(t *testing.T) {
	var calls atomic.Int32
	sub := subscribe(func() ([]int, error) {
		return []int{int(calls.Add(1))}, nil
	}, 5*time.Millisecond)

	<-sub.C
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	// One in-flight poll may still finish after the stop.
	if calls.Load() > settled+1 {
		t.Errorf("polling continued after Unsubscribe: %d -> %d", settled, calls.Load())
	}
}
