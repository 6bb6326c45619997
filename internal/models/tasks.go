package models

import "time"

type TaskStatus int

const (
	TaskStatusInit TaskStatus = iota
	TaskStatusRunning
	TaskStatusDone
	TaskStatusChecked
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusInit:
		return "init"
	case TaskStatusRunning:
		return "running"
	case TaskStatusDone:
		return "done"
	case TaskStatusChecked:
		return "checked"
	default:
		return "unknown"
	}
}

// Result is the outcome of a copy task. Its numeric value doubles as the
// process exit code.
type Result int

const (
	ResultOK Result = iota
	ResultReadError
	ResultWriteError
	ResultVerifyError
	ResultArgError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultReadError:
		return "read error"
	case ResultWriteError:
		return "write error"
	case ResultVerifyError:
		return "verify error"
	case ResultArgError:
		return "arg error"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit status for r.
func (r Result) ExitCode() int {
	return int(r)
}

// Task is one input->output file pair and its execution state.
// A task with an empty InputPath is a bad pair and is never started.
type Task struct {
	Index      int
	InputPath  string
	OutputPath string
	Size       uint64
	Verify     bool

	Status  TaskStatus
	Result  Result
	Elapsed time.Duration
	Err     error
}

// NewTask creates a task in the Init state.
func NewTask(index int, inputPath, outputPath string, size uint64, verify bool) *Task {
	return &Task{
		Index:      index,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Size:       size,
		Verify:     verify,
		Status:     TaskStatusInit,
	}
}

// NewBadPair creates a placeholder for a pair whose input was missing.
func NewBadPair(index int) *Task {
	return &Task{Index: index, Status: TaskStatusInit}
}

// IsBadPair reports whether the task was excluded at construction time.
func (t *Task) IsBadPair() bool {
	return t.InputPath == ""
}

func (t *Task) ElapsedSeconds() float64 {
	return t.Elapsed.Seconds()
}
