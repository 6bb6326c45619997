package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/threadcopy/internal/models"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModelTracksTasks(t *testing.T) {
	m := NewModel(3, true)
	// pair 1 had a missing input
	m = update(t, m, RunStarted{Total: 2})

	m = update(t, m, TaskStarted{Index: 0, Input: "a.bin", Output: "oa.bin", Size: 10})
	m = update(t, m, TaskStarted{Index: 2, Input: "c.bin", Output: "oc.bin", Size: 2048})
	assert.Equal(t, 0.0, m.Done())

	m = update(t, m, TaskChecked{Index: 2, Result: models.ResultVerifyError, Elapsed: time.Millisecond})
	assert.Equal(t, 0.5, m.Done())
	assert.Equal(t, 1, m.errCount)
	require.Len(t, m.logs, 1)
	assert.Contains(t, m.logs[0], "c.bin")

	// A second check of the same task is ignored.
	m = update(t, m, TaskChecked{Index: 2, Result: models.ResultVerifyError})
	assert.Equal(t, 1, m.errCount)

	m = update(t, m, TaskChecked{Index: 0, Result: models.ResultOK})
	assert.Equal(t, 1.0, m.Done())
	assert.Equal(t, 1, m.okCount)

	view := m.View()
	assert.Contains(t, view, "threadcopy (verify)")
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "[0002]")
	assert.Contains(t, view, "verify error")
}

func TestModelIgnoresUnknownTask(t *testing.T) {
	m := update(t, NewModel(1, false), TaskChecked{Index: 5, Result: models.ResultOK})
	assert.Equal(t, 0, m.okCount)
}

func TestModelQuitsWhenRunFinishes(t *testing.T) {
	m := NewModel(1, false)
	next, cmd := m.Update(RunFinished{Result: models.ResultOK, Elapsed: time.Second})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).finished)
	assert.Contains(t, next.(Model).View(), "Finished in")
}

func TestVisibleTasksPutsRunningFirst(t *testing.T) {
	m := NewModel(20, false)
	for i := 0; i < 20; i++ {
		m = update(t, m, TaskStarted{Index: i, Input: "in", Output: "out"})
	}
	for i := 0; i < 10; i++ {
		m = update(t, m, TaskChecked{Index: i, Result: models.ResultOK})
	}

	visible := m.visibleTasks()
	require.Len(t, visible, maxVisibleTasks)
	assert.Equal(t, 10, visible[0])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "2.0 KB", formatSize(2048))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "...7890", truncate("1234567890", 7))
}

func TestModelProgressCountsPendingPairs(t *testing.T) {
	m := NewModel(4, false)
	m = update(t, m, TaskStarted{Index: 0, Input: "a.bin", Output: "oa.bin"})
	m = update(t, m, TaskChecked{Index: 0, Result: models.ResultOK})
	assert.Equal(t, 0.25, m.Done(), "pairs not started yet still count")

	m = update(t, m, RunStarted{Total: 1})
	assert.Equal(t, 1.0, m.Done())
}
