package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	batchRecent   = 6  // finished documents listed under the bar
	batchBarWidth = 40 // progress bar cells
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// batchDoneMsg tells the model that no further results will arrive.
type batchDoneMsg struct{}

type batchTickMsg time.Time

func batchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return batchTickMsg(t) })
}

// batchModel is the bubbletea model for the batch progress view. It counts
// the [batchResult] messages sent by the workers and quits after the last.
type batchModel struct {
	Total       int
	Done        int
	Failed      int
	Cached      int
	Truncated   int
	Recent      []batchResult
	Interrupted bool

	start time.Time
	now   time.Time
}

func newBatchModel(total int) batchModel {
	now := time.Now()
	return batchModel{Total: total, start: now, now: now}
}

func (m batchModel) Init() tea.Cmd {
	return batchTick()
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Interrupted = true
			return m, tea.Quit
		}
	case batchResult:
		m.Done++
		switch {
		case msg.Err != nil:
			m.Failed++
		case msg.CacheHit:
			m.Cached++
		}
		if msg.Err == nil && msg.Report.Omitted > 0 {
			m.Truncated++
		}
		m.Recent = append(m.Recent, msg)
		if len(m.Recent) > batchRecent {
			m.Recent = m.Recent[len(m.Recent)-batchRecent:]
		}
		if m.Done >= m.Total {
			return m, tea.Quit
		}
	case batchDoneMsg:
		return m, tea.Quit
	case batchTickMsg:
		m.now = time.Time(msg)
		return m, batchTick()
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering purchase orders"))
	b.WriteString("\n\n")
	b.WriteString(m.bar())
	b.WriteString(fmt.Sprintf("  %s", StyleNumber.Render(fmt.Sprintf("%d/%d", m.Done, m.Total))))
	b.WriteString("\n")

	stats := []string{m.now.Sub(m.start).Round(100 * time.Millisecond).String()}
	if m.Cached > 0 {
		stats = append(stats, fmt.Sprintf("%d cached", m.Cached))
	}
	if m.Truncated > 0 {
		stats = append(stats, fmt.Sprintf("%d truncated", m.Truncated))
	}
	if m.Failed > 0 {
		stats = append(stats, StyleError.Render(fmt.Sprintf("%d failed", m.Failed)))
	}
	b.WriteString(listDimStyle.Render(strings.Join(stats, " · ")))
	b.WriteString("\n\n")

	for _, r := range m.Recent {
		b.WriteString(resultLine(r))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m batchModel) bar() string {
	filled := 0
	if m.Total > 0 {
		filled = batchBarWidth * m.Done / m.Total
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", batchBarWidth-filled))
}

// resultLine formats one finished document for both the progress view and
// plain output.
func resultLine(r batchResult) string {
	name := filepath.Base(r.Path)
	if r.Err != nil {
		return styleIconError.Render(iconError) + " " + name + " " + StyleError.Render(r.Err.Error())
	}
	detail := fmt.Sprintf("%d items", r.Report.Items)
	if r.Report.Omitted > 0 {
		detail += fmt.Sprintf(", %d omitted", r.Report.Omitted)
	}
	if r.CacheHit {
		detail += ", " + iconCached
	}
	line := styleIconSuccess.Render(iconSuccess) + " " + name + " " + listDimStyle.Render(iconArrow+" "+filepath.Base(r.Output)+" ("+detail+")")
	if n := len(r.Report.Warnings); n > 0 {
		line += " " + StyleWarning.Render(fmt.Sprintf("%d warnings", n))
	}
	return line
}
