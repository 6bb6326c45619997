package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kelsos/threadcopy/internal/models"
)

// CopyMonitor renders task progress. It implements async.Observer.
type CopyMonitor struct {
	program *tea.Program
}

func NewCopyMonitor(total int, verify bool, opts ...tea.ProgramOption) *CopyMonitor {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &CopyMonitor{
		program: tea.NewProgram(NewModel(total, verify), opts...),
	}
}

// RunStarted replaces the initial total once bad pairs are known.
func (cm *CopyMonitor) RunStarted(total int) {
	cm.program.Send(RunStarted{Total: total})
}

func (cm *CopyMonitor) TaskStarted(task *models.Task) {
	cm.program.Send(TaskStarted{
		Index:  task.Index,
		Input:  task.InputPath,
		Output: task.OutputPath,
		Size:   task.Size,
	})
}

func (cm *CopyMonitor) TaskChecked(task *models.Task) {
	cm.program.Send(TaskChecked{
		Index:   task.Index,
		Result:  task.Result,
		Elapsed: task.Elapsed,
	})
}

func (cm *CopyMonitor) AddLog(message string) {
	cm.program.Send(LogMessage{Message: message})
}

// Run executes job in the background while the TUI runs in the foreground.
// The TUI closes when job returns; a user quitting the TUI does not stop
// the copy, Run still waits for job.
func (cm *CopyMonitor) Run(job func() (models.Result, error)) (models.Result, error) {
	type outcome struct {
		result models.Result
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		result, err := job()
		if err != nil {
			cm.AddLog(fmt.Sprintf("❌ Fatal error: %v", err))
		}
		cm.program.Send(RunFinished{Result: result, Elapsed: time.Since(start)})
		done <- outcome{result: result, err: err}
	}()

	if _, err := cm.program.Run(); err != nil {
		res := <-done
		if res.err != nil {
			return res.result, res.err
		}
		return res.result, fmt.Errorf("failed to run TUI: %w", err)
	}

	res := <-done
	return res.result, res.err
}
