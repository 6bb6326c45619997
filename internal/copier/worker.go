package copier

import (
	"time"

	"github.com/kelsos/threadcopy/internal/logger"
	"github.com/kelsos/threadcopy/internal/models"
)

// Run executes one task: copy, then verify when the task asks for it.
// It records result, error and elapsed time and leaves the task Done.
// Run never touches another task.
func Run(task *models.Task, bufferSize int) {
	start := time.Now()

	err := Copy(task.InputPath, task.OutputPath, bufferSize)
	if err == nil && task.Verify {
		err = Verify(task.InputPath, task.OutputPath, bufferSize)
	}

	task.Elapsed = time.Since(start)
	task.Err = err
	task.Result = ResultOf(err)
	if err != nil {
		logger.Error("Task [%04d] %s -> %s failed: %v", task.Index, task.InputPath, task.OutputPath, err)
	}

	task.Status = models.TaskStatusDone
}
