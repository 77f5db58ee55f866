// Package tui is the live telemetry dashboard behind "mspctl watch". It
// polls the flight controller on a fixed interval and renders attitude,
// radio, and GPS state with the bubbletea/lipgloss stack.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightlink/msp/multiwii"
)

// Snapshot is one round of telemetry pulled from the board.
type Snapshot struct {
	Attitude multiwii.Attitude
	Analog   multiwii.Analog
	Channels []uint16
	GPS      multiwii.RawGPS
}

// Poller fetches a fresh Snapshot; the dashboard never touches the
// serial link directly.
type Poller func(ctx context.Context) (Snapshot, error)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true).
			PaddingLeft(1)
)

type tab int

const (
	tabAttitude tab = iota
	tabRadio
	tabGPS
	tabCount
)

type tickMsg time.Time

type snapshotMsg Snapshot

type errMsg error

const pollInterval = 500 * time.Millisecond

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	poll      Poller
	device    string
	tabs      []string
	activeTab tab
	snap      Snapshot
	haveData  bool
	err       error
	lastPoll  time.Time
	width     int
	height    int
}

// New returns a dashboard polling via poll; device is display-only.
func New(poll Poller, device string) Model {
	return Model{
		poll:   poll,
		device: device,
		tabs:   []string{"Attitude", "Radio", "GPS"},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.fetch())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pollInterval)
		defer cancel()
		snap, err := m.poll(ctx)
		if err != nil {
			return errMsg(err)
		}
		return snapshotMsg(snap)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1":
			m.activeTab = tabAttitude
		case "2":
			m.activeTab = tabRadio
		case "3":
			m.activeTab = tabGPS
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(tick(), m.fetch())

	case snapshotMsg:
		m.snap = Snapshot(msg)
		m.haveData = true
		m.err = nil
		m.lastPoll = time.Now()
		return m, nil

	case errMsg:
		m.err = msg
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "connecting..."
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("  mspctl watch  "))
	sb.WriteString("\n")

	for i, name := range m.tabs {
		label := fmt.Sprintf(" %d: %s ", i+1, name)
		if tab(i) == m.activeTab {
			sb.WriteString(activeTabStyle.Render(label))
		} else {
			sb.WriteString(inactiveTabStyle.Render(label))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")

	if !m.haveData {
		sb.WriteString(valueStyle.Render("waiting for telemetry..."))
	} else {
		sb.WriteString(m.renderActiveTab())
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	return sb.String()
}

func (m Model) renderActiveTab() string {
	switch m.activeTab {
	case tabRadio:
		return m.renderRadio()
	case tabGPS:
		return m.renderGPS()
	default:
		return m.renderAttitude()
	}
}

func (m Model) renderAttitude() string {
	att := m.snap.Attitude
	analog := m.snap.Analog
	rows := []string{
		line("roll", fmt.Sprintf("%+7.1f°", att.Roll)),
		line("pitch", fmt.Sprintf("%+7.1f°", att.Pitch)),
		line("heading", fmt.Sprintf("%6.0f°", att.Heading)),
		"",
		line("battery", fmt.Sprintf("%.1f V", analog.VBat)),
		line("rssi", fmt.Sprintf("%d", analog.RSSI)),
		line("amperage", fmt.Sprintf("%d", analog.Amperage)),
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRadio() string {
	if len(m.snap.Channels) == 0 {
		return valueStyle.Render("no channels reported")
	}
	rows := make([]string, 0, len(m.snap.Channels))
	for i, v := range m.snap.Channels {
		rows = append(rows, line(fmt.Sprintf("ch%d", i+1), fmt.Sprintf("%4d %s", v, bar(v))))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderGPS() string {
	gps := m.snap.GPS
	fix := "no fix"
	if gps.Fix {
		fix = fmt.Sprintf("fix (%d sats)", gps.NumSat)
	}
	rows := []string{
		line("status", fix),
		line("latitude", fmt.Sprintf("%+.7f°", gps.Latitude)),
		line("longitude", fmt.Sprintf("%+.7f°", gps.Longitude)),
		line("altitude", fmt.Sprintf("%d m", gps.Altitude)),
		line("speed", fmt.Sprintf("%d cm/s", gps.Speed)),
		line("course", fmt.Sprintf("%.1f°", gps.GroundCourse)),
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v", m.err))
	}
	parts := []string{fmt.Sprintf("device: %s", m.device)}
	if !m.lastPoll.IsZero() {
		parts = append(parts, fmt.Sprintf("last poll: %s", m.lastPoll.Format("15:04:05")))
	}
	parts = append(parts, "q: quit  tab: next tab")
	return statusStyle.Render(strings.Join(parts, "  |  "))
}

func line(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + valueStyle.Render(value)
}

// bar draws a coarse gauge for one RC channel over the usual 1000..2000
// microsecond range.
func bar(v uint16) string {
	const width = 20
	n := (int(v) - 1000) * width / 1000
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return "[" + strings.Repeat("=", n) + strings.Repeat(" ", width-n) + "]"
}
