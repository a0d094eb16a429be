package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tempo/internal/pomodoro"
)

// PomodoroModel drives the pomodoro timer view
type PomodoroModel struct {
	width  int
	height int

	timer    *pomodoro.Timer
	progress progress.Model

	completedMsg string // shown briefly after a phase completes
	quitting     bool
}

// pomodoroTickMsg refreshes the countdown
type pomodoroTickMsg struct{}

// NewPomodoroModel creates the pomodoro view over an idle timer
func NewPomodoroModel(timer *pomodoro.Timer) PomodoroModel {
	p := progress.New(
		progress.WithSolidFill(ColorAccentMain),
		progress.WithoutPercentage(),
	)
	return PomodoroModel{
		timer:    timer,
		progress: p,
	}
}

// Init starts the tick loop
func (m PomodoroModel) Init() tea.Cmd {
	return pomodoroTick()
}

func pomodoroTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return pomodoroTickMsg{}
	})
}

// Update handles messages
func (m PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pomodoroTickMsg:
		if m.timer.Tick(time.Now()) {
			m.completedMsg = fmt.Sprintf("%s phase complete!", m.previousPhase())
		}
		if m.quitting {
			return m, nil
		}
		return m, pomodoroTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-8, 48)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			now := time.Now()
			if m.timer.Running() {
				m.timer.Pause(now)
			} else {
				m.timer.Start(now)
				m.completedMsg = ""
			}
			return m, nil
		case "r", "R":
			m.timer.Reset()
			m.completedMsg = ""
			return m, nil
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// previousPhase names the phase that just finished, for the completion
// banner (the timer has already advanced when Tick returns true)
func (m PomodoroModel) previousPhase() string {
	if m.timer.Phase() == pomodoro.PhaseWork {
		return "Break"
	}
	return "Work"
}

// View renders the pomodoro timer
func (m PomodoroModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	now := time.Now()
	remaining := m.timer.Remaining(now)
	phase := m.timer.Phase()

	phaseColor := ColorAccentBright
	if phase != pomodoro.PhaseWork {
		phaseColor = ColorWarning
	}

	var components []string

	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(phaseColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(fmt.Sprintf("🍅  POMODORO — %s", strings.ToUpper(phase.String()))))

	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60
	clock := BigDigits(fmt.Sprintf("%02d:%02d", minutes, seconds))
	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(phaseColor)).
		Bold(true)
	clockLines := strings.Split(clock, "\n")
	for i, line := range clockLines {
		clockLines[i] = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width).
			Render(clockStyle.Render(line))
	}
	components = append(components, strings.Join(clockLines, "\n"))

	total := m.timer.PhaseDuration()
	ratio := 0.0
	if total > 0 {
		ratio = 1 - remaining.Seconds()/total.Seconds()
	}
	bar := m.progress.ViewAs(ratio)
	components = append(components, lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(m.width).
		Render(bar))

	status := "paused — press space to start"
	if m.timer.Running() {
		status = fmt.Sprintf("running — %d/%d work sessions this cycle",
			m.timer.CompletedWork(), m.timer.CycleLength())
	}
	if m.completedMsg != "" {
		status = m.completedMsg
	}
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(status))

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width).
		Render("space: start/pause  •  r: reset  •  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, content, help)
}
