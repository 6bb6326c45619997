package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kelsos/threadcopy/internal/models"
)

const maxVisibleTasks = 15

type taskRow struct {
	index   int
	input   string
	output  string
	size    uint64
	status  models.TaskStatus
	result  models.Result
	elapsed time.Duration
}

type Model struct {
	tasks     map[int]*taskRow
	order     []int
	total     int
	logs      []string
	spinner   spinner.Model
	progress  progress.Model
	width     int
	height    int
	quit      bool
	finished  bool
	verify    bool
	errCount  int
	okCount   int
	startTime time.Time
	elapsed   time.Duration
}

type TaskStarted struct {
	Index  int
	Input  string
	Output string
	Size   uint64
}

type TaskChecked struct {
	Index   int
	Result  models.Result
	Elapsed time.Duration
}

type LogMessage struct {
	Message string
}

// RunStarted carries the number of pairs that will actually be copied.
type RunStarted struct {
	Total int
}

type RunFinished struct {
	Result  models.Result
	Elapsed time.Duration
}

func NewModel(total int, verify bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		tasks:     make(map[int]*taskRow),
		total:     total,
		verify:    verify,
		spinner:   sp,
		progress:  pr,
		width:     80,
		height:    24,
		startTime: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-20, 10)

	case RunStarted:
		m.total = msg.Total

	case TaskStarted:
		m = m.handleTaskStarted(msg)

	case TaskChecked:
		m = m.handleTaskChecked(msg)

	case LogMessage:
		m = m.handleLogMessage(msg)

	case RunFinished:
		m.finished = true
		m.elapsed = msg.Elapsed
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		if progressModel, ok := progressModel.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleTaskStarted(msg TaskStarted) Model {
	if _, exists := m.tasks[msg.Index]; !exists {
		m.order = append(m.order, msg.Index)
	}
	m.tasks[msg.Index] = &taskRow{
		index:  msg.Index,
		input:  msg.Input,
		output: msg.Output,
		size:   msg.Size,
		status: models.TaskStatusRunning,
	}
	return m
}

func (m Model) handleTaskChecked(msg TaskChecked) Model {
	row, exists := m.tasks[msg.Index]
	if !exists || row.status == models.TaskStatusChecked {
		return m
	}
	row.status = models.TaskStatusChecked
	row.result = msg.Result
	row.elapsed = msg.Elapsed
	if msg.Result == models.ResultOK {
		m.okCount++
	} else {
		m.errCount++
		m = m.handleLogMessage(LogMessage{Message: fmt.Sprintf("❌ [%04d] %s -> %s: %s",
			row.index, row.input, row.output, msg.Result)})
	}
	return m
}

func (m Model) handleLogMessage(msg LogMessage) Model {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s",
		time.Now().Format("15:04:05"), msg.Message))
	if len(m.logs) > 8 {
		m.logs = m.logs[len(m.logs)-8:]
	}
	return m
}

// Done returns the fraction of launched pairs that have been checked.
func (m Model) Done() float64 {
	total := max(m.total, len(m.tasks))
	if total == 0 {
		return 0
	}
	return float64(m.okCount+m.errCount) / float64(total)
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	title := "📁 threadcopy"
	if m.verify {
		title += " (verify)"
	}
	s.WriteString(headerStyle.Render(title))
	s.WriteString("\n\n")

	running := len(m.tasks) - m.okCount - m.errCount
	summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	summary := fmt.Sprintf("Pairs: %d | ⏳ Running: %d | ✅ OK: %d | ❌ Errors: %d",
		m.total, running, m.okCount, m.errCount)
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n")
	s.WriteString(m.progress.ViewAs(m.Done()))
	s.WriteString("\n\n")

	taskSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(max(m.width-2, 20))

	var taskList strings.Builder
	taskList.WriteString("📊 Tasks\n")
	taskList.WriteString(strings.Repeat("─", 60) + "\n")

	for _, index := range m.visibleTasks() {
		row := m.tasks[index]
		icon := m.spinner.View()
		color := "39"
		detail := formatSize(row.size)
		if row.status == models.TaskStatusChecked {
			icon, color = resultIcon(row.result), resultColor(row.result)
			detail = fmt.Sprintf("%s in %.3fs", row.result, row.elapsed.Seconds())
		}
		line := fmt.Sprintf("%s [%04d] %-25s → %-25s %s",
			icon, row.index, truncate(row.input, 25), truncate(row.output, 25), detail)
		taskList.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(line) + "\n")
	}

	s.WriteString(taskSectionStyle.Render(taskList.String()))
	s.WriteString("\n\n")

	logSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(max(m.width-2, 20))

	var logSection strings.Builder
	logSection.WriteString("📝 Recent Logs\n")
	for _, log := range m.logs {
		logSection.WriteString(log + "\n")
	}
	s.WriteString(logSectionStyle.Render(logSection.String()))
	s.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := "Press 'q' to quit | Logs: logs/threadcopy_*.log"
	if m.finished {
		footer = fmt.Sprintf("Finished in %f second(s)", m.elapsed.Seconds())
	}
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

// visibleTasks keeps running tasks first, then the most recently started.
func (m Model) visibleTasks() []int {
	var running, checked []int
	for _, index := range m.order {
		if m.tasks[index].status == models.TaskStatusChecked {
			checked = append(checked, index)
		} else {
			running = append(running, index)
		}
	}
	visible := append(running, checked...)
	if len(visible) > maxVisibleTasks {
		visible = visible[:maxVisibleTasks]
	}
	return visible
}

func resultIcon(result models.Result) string {
	switch result {
	case models.ResultOK:
		return "✅"
	case models.ResultReadError:
		return "📕"
	case models.ResultWriteError:
		return "📝"
	case models.ResultVerifyError:
		return "🔍"
	default:
		return "❓"
	}
}

func resultColor(result models.Result) string {
	if result == models.ResultOK {
		return "82"
	}
	return "196"
}

func formatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
