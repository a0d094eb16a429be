package pomodoro

import (
	"time"

	"tempo/internal/config"
)

// Phase is the current pomodoro phase
type Phase int

const (
	// PhaseWork is a focused work interval
	PhaseWork Phase = iota
	// PhaseBreak is a short break between work intervals
	PhaseBreak
	// PhaseLongBreak is the longer break after a full cycle of work intervals
	PhaseLongBreak
)

// String returns the phase label shown in the TUI
func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseBreak:
		return "Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// Timer is the pomodoro phase state machine: Work cycles into Break,
// and into LongBreak after a configured number of completed work
// phases. All transitions go through Tick with an explicit now, so the
// timer never reads the wall clock itself.
type Timer struct {
	work       time.Duration
	brk        time.Duration
	longBreak  time.Duration
	cycleLen   int
	autoBreaks bool

	phase         Phase
	completedWork int
	running       bool
	startedAt     time.Time
	remaining     time.Duration
}

// NewTimer builds an idle timer in the work phase from the pomodoro settings
func NewTimer(cfg config.PomodoroConfig) *Timer {
	t := &Timer{
		work:       time.Duration(cfg.WorkMinutes) * time.Minute,
		brk:        time.Duration(cfg.BreakMinutes) * time.Minute,
		longBreak:  time.Duration(cfg.LongBreakMinutes) * time.Minute,
		cycleLen:   cfg.SessionsBeforeLongBreak,
		autoBreaks: cfg.AutoStartBreaks,
	}
	t.remaining = t.work
	return t
}

// Start begins (or resumes) the current phase at now
func (t *Timer) Start(now time.Time) {
	if t.running {
		return
	}
	t.running = true
	t.startedAt = now
}

// Pause freezes the timer, keeping the remaining time as of now
func (t *Timer) Pause(now time.Time) {
	if !t.running {
		return
	}
	t.remaining = t.remainingAt(now)
	t.running = false
}

// Reset returns to an idle work phase with the cycle counter cleared
func (t *Timer) Reset() {
	t.running = false
	t.phase = PhaseWork
	t.completedWork = 0
	t.remaining = t.work
}

// Tick advances the timer to now and reports whether a phase completed.
// On completion the timer moves to the next phase; it keeps running only
// when auto-starting breaks is enabled and a break comes next.
func (t *Timer) Tick(now time.Time) bool {
	if !t.running || t.remainingAt(now) > 0 {
		return false
	}

	wasWork := t.phase == PhaseWork
	t.advance()
	t.startedAt = now
	if wasWork && t.autoBreaks {
		// Breaks auto-start; returning to work always waits for the user
		t.running = true
	} else {
		t.running = false
	}
	return true
}

// advance moves to the phase that follows the one just completed
func (t *Timer) advance() {
	if t.phase == PhaseWork {
		t.completedWork++
		if t.completedWork >= t.cycleLen {
			t.phase = PhaseLongBreak
			t.remaining = t.longBreak
			t.completedWork = 0
		} else {
			t.phase = PhaseBreak
			t.remaining = t.brk
		}
		return
	}
	t.phase = PhaseWork
	t.remaining = t.work
}

// Remaining returns the time left in the current phase as of now
func (t *Timer) Remaining(now time.Time) time.Duration {
	return t.remainingAt(now)
}

// remainingAt accounts for running time since the phase started
func (t *Timer) remainingAt(now time.Time) time.Duration {
	if !t.running {
		return t.remaining
	}
	left := t.remaining - now.Sub(t.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// PhaseDuration returns the full length of the current phase
func (t *Timer) PhaseDuration() time.Duration {
	switch t.phase {
	case PhaseBreak:
		return t.brk
	case PhaseLongBreak:
		return t.longBreak
	default:
		return t.work
	}
}

// Phase returns the current phase
func (t *Timer) Phase() Phase {
	return t.phase
}

// Running reports whether the timer is counting down
func (t *Timer) Running() bool {
	return t.running
}

// CompletedWork returns completed work phases in the current cycle
func (t *Timer) CompletedWork() int {
	return t.completedWork
}

// CycleLength returns how many work phases make up a full cycle
func (t *Timer) CycleLength() int {
	return t.cycleLen
}
