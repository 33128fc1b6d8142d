package schedule

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleFires(t *testing.T) {
	scheduler := NewScheduler()
	defer scheduler.Stop()

	fired := make(chan struct{})
	id := scheduler.Schedule(10*time.Millisecond, func() {
		close(fired)
	})
	if id == "" {
		t.Fatal("Schedule() returned empty task id")
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task did not fire")
	}

	// Fired tasks leave the pending set
	deadline := time.Now().Add(time.Second)
	for scheduler.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if pending := scheduler.Pending(); pending != 0 {
		t.Errorf("Pending() = %d after fire, want 0", pending)
	}
}

func TestCancelPreventsFire(t *testing.T) {
	scheduler := NewScheduler()
	defer scheduler.Stop()

	var fired atomic.Bool
	id := scheduler.Schedule(50*time.Millisecond, func() {
		fired.Store(true)
	})

	if !scheduler.Cancel(id) {
		t.Fatal("Cancel() = false for a pending task")
	}
	if scheduler.Cancel(id) {
		t.Error("Cancel() twice = true, want false")
	}

	time.Sleep(120 * time.Millisecond)
	if fired.Load() {
		t.Error("cancelled task fired anyway")
	}
}

func TestCancelUnknownID(t *testing.T) {
	scheduler := NewScheduler()
	defer scheduler.Stop()

	if scheduler.Cancel("no-such-task") {
		t.Error("Cancel(unknown) = true, want false")
	}
}

func TestStopCancelsAllAndRejectsNew(t *testing.T) {
	scheduler := NewScheduler()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		scheduler.Schedule(50*time.Millisecond, func() {
			fired.Add(1)
		})
	}

	scheduler.Stop()

	if pending := scheduler.Pending(); pending != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", pending)
	}

	if id := scheduler.Schedule(time.Millisecond, func() { fired.Add(1) }); id != "" {
		t.Errorf("Schedule() after Stop = %q, want empty", id)
	}

	time.Sleep(120 * time.Millisecond)
	if count := fired.Load(); count != 0 {
		t.Errorf("%d tasks fired after Stop, want 0", count)
	}
}
