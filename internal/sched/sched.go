// Package sched runs callbacks against simulated frame time. Timers only
// advance when the owner calls Advance, so pausing the game loop pauses them
// too, and tests can drive them deterministically.
package sched

import "time"

// Scheduler owns a set of timers measured in simulated time.
type Scheduler struct {
	now   time.Duration
	tasks []*Task
}

// Task is a handle to a scheduled callback.
type Task struct {
	interval  time.Duration
	remaining time.Duration
	loop      bool
	paused    bool
	cancelled bool
	fired     int
	fn        func()
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Every schedules fn to run each interval, starting one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	return s.add(&Task{interval: interval, remaining: interval, loop: true, fn: fn})
}

// After schedules fn to run once after delay.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	return s.add(&Task{interval: delay, remaining: delay, fn: fn})
}

func (s *Scheduler) add(t *Task) *Task {
	s.tasks = append(s.tasks, t)
	return t
}

// Now returns the total simulated time advanced so far.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Advance moves simulated time forward by dt and fires due callbacks in
// scheduling order. Paused tasks do not accumulate time. Tasks scheduled by a
// callback start counting on the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.now += dt

	due := make([]*Task, len(s.tasks))
	copy(due, s.tasks)

	for _, t := range due {
		if t.cancelled || t.paused {
			continue
		}
		t.remaining -= dt
		for t.remaining <= 0 && !t.cancelled && !t.paused {
			t.fired++
			t.fn()
			if !t.loop {
				t.cancelled = true
				break
			}
			if t.interval <= 0 {
				t.remaining = 0
				break
			}
			t.remaining += t.interval
		}
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Clear cancels every task.
func (s *Scheduler) Clear() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = s.tasks[:0]
}

// Pause stops the task from accumulating time.
func (t *Task) Pause() {
	t.paused = true
}

// Resume lets a paused task continue from where it stopped.
func (t *Task) Resume() {
	t.paused = false
}

// Cancel removes the task; it never fires again.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Paused reports whether the task is paused.
func (t *Task) Paused() bool {
	return t.paused
}

// Active reports whether the task can still fire.
func (t *Task) Active() bool {
	return !t.cancelled
}

// Fired returns how many times the callback ran.
func (t *Task) Fired() int {
	return t.fired
}
