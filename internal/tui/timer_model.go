package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tempo/internal/tracker"
)

// TimerModel is the live tracking timer view. It only reads elapsed
// time from the controller; sealing the session happens after the
// program exits, in RunTrackingTimer.
type TimerModel struct {
	width  int
	height int

	taskName  string
	startTime time.Time
	tracker   *tracker.Controller

	elapsed   time.Duration
	animation int

	stopping bool // user pressed S: stop and seal the session
	exiting  bool // user pressed ESC/Q: leave the session running
}

// timerTickMsg is sent every second to refresh the elapsed display
type timerTickMsg struct{}

// animationTickMsg drives the header animation
type animationTickMsg struct{}

// NewTimerModel creates the tracking timer view for the active session
func NewTimerModel(ctrl *tracker.Controller) TimerModel {
	taskName, startTime, _ := ctrl.Current()
	return TimerModel{
		taskName:  taskName,
		startTime: startTime,
		tracker:   ctrl,
		elapsed:   ctrl.Elapsed(),
	}
}

// Init starts the timer and animation tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(time.Time) tea.Msg {
			return timerTickMsg{}
		}),
		tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
			return animationTickMsg{}
		}),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = m.tracker.Elapsed()
		if m.stopping || m.exiting {
			return m, nil
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return timerTickMsg{}
		})

	case animationTickMsg:
		m.animation = (m.animation + 1) % 4
		if m.stopping || m.exiting {
			return m, nil
		}
		return m, tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
			return animationTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			// Leave the session running in the background
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	header := fmt.Sprintf("%s  TRACKING TIME  %s", animChars[m.animation], animChars[m.animation])
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(header))

	taskName := m.taskName
	if len(taskName) > m.width-4 && m.width > 7 {
		taskName = taskName[:m.width-7] + "..."
	}
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(taskName))

	components = append(components, m.renderClock())

	startedAt := fmt.Sprintf("Started at %s", m.startTime.Format("15:04:05"))
	components = append(components, lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(startedAt))

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderClock renders the elapsed time as a large unicode clock
func (m TimerModel) renderClock() string {
	hours := int(m.elapsed.Hours())
	minutes := int(m.elapsed.Minutes()) % 60
	seconds := int(m.elapsed.Seconds()) % 60

	var timeStr string
	if hours > 0 {
		timeStr = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	} else {
		timeStr = fmt.Sprintf("%02d:%02d", minutes, seconds)
	}

	clock := BigDigits(timeStr)
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	lines := strings.Split(clock, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width).
			Render(style.Render(line))
	}
	return strings.Join(lines, "\n")
}

// renderHelpBar renders the key hints at the bottom
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width)
	return helpStyle.Render("s: stop & save  •  q/esc: keep tracking in background")
}
