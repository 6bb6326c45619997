package async

import (
	"fmt"
	"sync"

	"github.com/kelsos/threadcopy/internal/logger"
	"github.com/kelsos/threadcopy/internal/models"
)

// Observer is notified about task lifecycle changes, e.g. by the TUI.
type Observer interface {
	TaskStarted(task *models.Task)
	TaskChecked(task *models.Task)
}

// Monitor tracks started copy tasks and folds their results.
//
// Workers hand their finished task to Finish; Wait receives each of them
// exactly once, in completion order, moves it to Checked and keeps the
// last non-OK result.
type Monitor struct {
	finished chan *models.Task
	mu       sync.Mutex
	running  map[int]*models.Task
	result   models.Result
	checked  []*models.Task
	observer Observer
}

// NewMonitor creates a monitor able to hold capacity finished tasks
// without blocking their workers.
func NewMonitor(capacity int) *Monitor {
	if capacity < 1 {
		capacity = 1
	}
	return &Monitor{
		finished: make(chan *models.Task, capacity),
		running:  make(map[int]*models.Task),
	}
}

// SetObserver registers an observer. Must be called before Start.
func (m *Monitor) SetObserver(o Observer) {
	m.observer = o
}

// Start registers a task for monitoring and marks it Running.
// It must be called before the task's worker is started.
func (m *Monitor) Start(task *models.Task) error {
	if task.IsBadPair() {
		return fmt.Errorf("task %d is a bad pair and cannot be started", task.Index)
	}

	m.mu.Lock()
	if _, exists := m.running[task.Index]; exists {
		m.mu.Unlock()
		return fmt.Errorf("task %d is already running", task.Index)
	}
	task.Status = models.TaskStatusRunning
	m.running[task.Index] = task
	m.mu.Unlock()

	logger.Debug("Registered task [%04d] for monitoring", task.Index)
	if m.observer != nil {
		m.observer.TaskStarted(task)
	}
	return nil
}

// Abandon unregisters a task whose worker could not be started.
// The task goes back to Init and never reaches Done.
func (m *Monitor) Abandon(task *models.Task) {
	m.mu.Lock()
	delete(m.running, task.Index)
	m.mu.Unlock()

	task.Status = models.TaskStatusInit
}

// Finish is called by a worker once its task reached Done.
func (m *Monitor) Finish(task *models.Task) {
	m.finished <- task
}

// Running returns the number of tasks that have not been checked yet.
func (m *Monitor) Running() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.running)
}

// Wait blocks until every started task has been checked and returns the
// folded process result.
func (m *Monitor) Wait() models.Result {
	for m.Running() > 0 {
		task := <-m.finished
		m.check(task)
	}
	logger.Debug("Exit with result: %d", m.result)
	return m.result
}

func (m *Monitor) check(task *models.Task) {
	m.mu.Lock()
	if _, exists := m.running[task.Index]; !exists || task.Status != models.TaskStatusDone {
		m.mu.Unlock()
		logger.Warn("Ignoring unexpected completion of task [%04d] in state %s", task.Index, task.Status)
		return
	}
	delete(m.running, task.Index)

	// TODO: keep every failure and rank them instead of reporting only the last one.
	if task.Result != models.ResultOK {
		m.result = task.Result
	}
	task.Status = models.TaskStatusChecked
	m.checked = append(m.checked, task)
	m.mu.Unlock()

	if task.Result == models.ResultOK {
		if task.Verify {
			logger.Debug("Completed thread [%04d] verified OK in %f second(s): %s -> %s",
				task.Index, task.ElapsedSeconds(), task.InputPath, task.OutputPath)
		} else {
			logger.Debug("Completed thread [%04d] OK in %f second(s): %s -> %s",
				task.Index, task.ElapsedSeconds(), task.InputPath, task.OutputPath)
		}
	}

	if m.observer != nil {
		m.observer.TaskChecked(task)
	}
}

// Checked returns the checked tasks in the order they were observed.
func (m *Monitor) Checked() []*models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Task(nil), m.checked...)
}
