package copier

import (
	"errors"
	"fmt"

	"github.com/kelsos/threadcopy/internal/models"
)

// TaskError is the terminal failure of a copy task. Result carries the
// failure category, Path the file that caused it.
type TaskError struct {
	Result models.Result
	Op     string
	Path   string
	Err    error
}

func (e *TaskError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s %s", e.Result, e.Op, e.Path)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Result, e.Op, e.Path, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

func readError(op, path string, err error) error {
	return &TaskError{Result: models.ResultReadError, Op: op, Path: path, Err: err}
}

func writeError(op, path string, err error) error {
	return &TaskError{Result: models.ResultWriteError, Op: op, Path: path, Err: err}
}

// ErrLengthMismatch is reported when the output runs out before, or
// continues after, the end of the input during verification.
var ErrLengthMismatch = errors.New("file lengths differ")

// ErrContentMismatch is reported when a verified chunk differs.
var ErrContentMismatch = errors.New("content differs")

// ResultOf maps an error returned by Copy or Verify onto a task result.
func ResultOf(err error) models.Result {
	if err == nil {
		return models.ResultOK
	}
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return taskErr.Result
	}
	return models.ResultReadError
}
