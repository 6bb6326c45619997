package async

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/threadcopy/internal/models"
)

type recordingObserver struct {
	mu      sync.Mutex
	started []int
	checked []int
}

func (o *recordingObserver) TaskStarted(task *models.Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, task.Index)
}

func (o *recordingObserver) TaskChecked(task *models.Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.checked = append(o.checked, task.Index)
}

func newTasks(n int) []*models.Task {
	tasks := make([]*models.Task, n)
	for i := range tasks {
		tasks[i] = models.NewTask(i, "in", "out", 0, false)
	}
	return tasks
}

func finish(m *Monitor, task *models.Task, result models.Result) {
	task.Result = result
	task.Status = models.TaskStatusDone
	m.Finish(task)
}

func TestMonitorLastFailureWins(t *testing.T) {
	tests := []struct {
		name     string
		results  []models.Result
		expected models.Result
	}{
		{
			name:     "all ok",
			results:  []models.Result{models.ResultOK, models.ResultOK},
			expected: models.ResultOK,
		},
		{
			name:     "write error then ok",
			results:  []models.Result{models.ResultWriteError, models.ResultOK},
			expected: models.ResultWriteError,
		},
		{
			name:     "later failure overwrites earlier",
			results:  []models.Result{models.ResultVerifyError, models.ResultOK, models.ResultReadError},
			expected: models.ResultReadError,
		},
		{
			name:     "less severe failure still wins when last",
			results:  []models.Result{models.ResultVerifyError, models.ResultReadError, models.ResultOK},
			expected: models.ResultReadError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := newTasks(len(tt.results))
			m := NewMonitor(len(tasks))
			for _, task := range tasks {
				require.NoError(t, m.Start(task))
			}
			for i, task := range tasks {
				finish(m, task, tt.results[i])
			}

			assert.Equal(t, tt.expected, m.Wait())
			assert.Equal(t, 0, m.Running())
			for _, task := range tasks {
				assert.Equal(t, models.TaskStatusChecked, task.Status)
			}
		})
	}
}

func TestMonitorFoldsInCompletionOrder(t *testing.T) {
	tasks := newTasks(3)
	m := NewMonitor(len(tasks))
	for _, task := range tasks {
		require.NoError(t, m.Start(task))
	}

	// Completion order differs from index order.
	finish(m, tasks[2], models.ResultOK)
	finish(m, tasks[0], models.ResultWriteError)
	finish(m, tasks[1], models.ResultOK)

	assert.Equal(t, models.ResultWriteError, m.Wait())

	order := []int{}
	for _, task := range m.Checked() {
		order = append(order, task.Index)
	}
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestMonitorChecksEachTaskOnce(t *testing.T) {
	tasks := newTasks(2)
	m := NewMonitor(4)
	obs := &recordingObserver{}
	m.SetObserver(obs)
	for _, task := range tasks {
		require.NoError(t, m.Start(task))
	}

	finish(m, tasks[0], models.ResultReadError)
	// A duplicate hand-off of an already checked task must be ignored.
	m.Finish(tasks[0])
	finish(m, tasks[1], models.ResultOK)

	result := m.Wait()
	assert.Equal(t, models.ResultReadError, result)
	assert.Len(t, m.Checked(), 2)
	assert.ElementsMatch(t, []int{0, 1}, obs.started)
	assert.Len(t, obs.checked, 2)
}

func TestMonitorRejectsBadPairs(t *testing.T) {
	m := NewMonitor(1)
	bad := models.NewBadPair(0)

	assert.Error(t, m.Start(bad))
	assert.Equal(t, models.TaskStatusInit, bad.Status)
	assert.Equal(t, 0, m.Running())
	assert.Equal(t, models.ResultOK, m.Wait())
}

func TestMonitorAbandon(t *testing.T) {
	tasks := newTasks(2)
	m := NewMonitor(2)
	for _, task := range tasks {
		require.NoError(t, m.Start(task))
	}
	assert.Error(t, m.Start(tasks[0]), "a task cannot be started twice")

	m.Abandon(tasks[1])
	assert.Equal(t, models.TaskStatusInit, tasks[1].Status)

	finish(m, tasks[0], models.ResultOK)
	assert.Equal(t, models.ResultOK, m.Wait())
	assert.Equal(t, models.TaskStatusInit, tasks[1].Status)
}

func TestMonitorConcurrentWorkers(t *testing.T) {
	tasks := newTasks(200)
	m := NewMonitor(len(tasks))
	for _, task := range tasks {
		require.NoError(t, m.Start(task))
	}

	for _, task := range tasks {
		go func(task *models.Task) {
			result := models.ResultOK
			if task.Index == 42 {
				result = models.ResultVerifyError
			}
			finish(m, task, result)
		}(task)
	}

	assert.Equal(t, models.ResultVerifyError, m.Wait())
	assert.Len(t, m.Checked(), len(tasks))
}
