package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/threadcopy/internal/models"
)

func TestSaveReport(t *testing.T) {
	ok := models.NewTask(0, "a.bin", "oa.bin", 10, true)
	ok.Status = models.TaskStatusChecked
	ok.Elapsed = 1500 * time.Millisecond

	failed := models.NewTask(2, "c.bin", "oc.bin", 3, true)
	failed.Status = models.TaskStatusChecked
	failed.Result = models.ResultVerifyError
	failed.Err = errors.New("content differs")

	report := &models.Report{
		RunID:   "run-1",
		Verify:  true,
		Result:  models.ResultVerifyError,
		Started: 2,
		Skipped: 1,
		Tasks: []models.TaskReport{
			models.NewTaskReport(ok),
			models.NewTaskReport(models.NewBadPair(1)),
			models.NewTaskReport(failed),
		},
	}

	path := filepath.Join(t.TempDir(), "reports", "run.json")
	require.NoError(t, SaveReport(path, report))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, models.ResultVerifyError, loaded.Result)
	require.Len(t, loaded.Tasks, 3)
	assert.Equal(t, "checked", loaded.Tasks[0].Status)
	assert.Equal(t, 1.5, loaded.Tasks[0].ElapsedSeconds)
	assert.Equal(t, "skipped", loaded.Tasks[1].Status)
	assert.Equal(t, "verify error", loaded.Tasks[2].Result)
	assert.Equal(t, "content differs", loaded.Tasks[2].Error)
}

func TestLoadReportMissing(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
