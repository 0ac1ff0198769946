package sched

import (
	"testing"
	"time"
)

const frame = time.Second / 60

func TestEveryFiresAtInterval(t *testing.T) {
	s := New()
	count := 0
	task := s.Every(100*time.Millisecond, func() { count++ })

	for i := 0; i < 6; i++ {
		s.Advance(50 * time.Millisecond)
	}

	if count != 3 {
		t.Errorf("fired %d times in 300ms, expected 3", count)
	}
	if task.Fired() != 3 {
		t.Errorf("Fired() = %d, expected 3", task.Fired())
	}
}

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	count := 0
	task := s.After(time.Second, func() { count++ })

	for i := 0; i < 200; i++ {
		s.Advance(frame)
	}

	if count != 1 {
		t.Errorf("one-shot fired %d times, expected 1", count)
	}
	if task.Active() {
		t.Error("one-shot should be inactive after firing")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected fired one-shot to be removed", s.Len())
	}
}

func TestPausedTaskDoesNotAccumulate(t *testing.T) {
	s := New()
	count := 0
	task := s.Every(100*time.Millisecond, func() { count++ })

	s.Advance(60 * time.Millisecond)
	task.Pause()
	s.Advance(time.Second)
	if count != 0 {
		t.Fatalf("paused task fired %d times", count)
	}

	task.Resume()
	s.Advance(30 * time.Millisecond)
	if count != 0 {
		t.Fatal("task should need the remaining 40ms after resume")
	}
	s.Advance(10 * time.Millisecond)
	if count != 1 {
		t.Errorf("fired %d times, expected 1", count)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	count := 0
	task := s.Every(10*time.Millisecond, func() { count++ })
	task.Cancel()

	s.Advance(time.Second)
	if count != 0 {
		t.Errorf("cancelled task fired %d times", count)
	}
}

func TestCallbackSchedulingNewTask(t *testing.T) {
	s := New()
	inner := 0
	s.After(10*time.Millisecond, func() {
		s.After(10*time.Millisecond, func() { inner++ })
	})

	s.Advance(20 * time.Millisecond)
	if inner != 0 {
		t.Fatal("task scheduled from a callback should not run in the same Advance")
	}
	s.Advance(10 * time.Millisecond)
	if inner != 1 {
		t.Errorf("inner fired %d times, expected 1", inner)
	}
}

func TestClear(t *testing.T) {
	s := New()
	fired := false
	s.Every(time.Millisecond, func() { fired = true })
	s.Clear()
	s.Advance(time.Second)

	if fired || s.Len() != 0 {
		t.Error("Clear should cancel all tasks")
	}
}
