package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tempo/internal/pomodoro"
	"tempo/internal/tracker"
)

// RunTrackingTimer shows the live timer for the active session.
// Returns true when the user chose to stop; sealing the session is the
// caller's job so no framework types cross into the tracker.
func RunTrackingTimer(ctrl *tracker.Controller) (stopped bool, err error) {
	model := NewTimerModel(ctrl)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("timer UI failed: %w", err)
	}

	if m, ok := finalModel.(TimerModel); ok {
		return m.stopping, nil
	}
	return false, nil
}

// RunPomodoro shows the pomodoro timer until the user quits
func RunPomodoro(timer *pomodoro.Timer) error {
	model := NewPomodoroModel(timer)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pomodoro UI failed: %w", err)
	}
	return nil
}
