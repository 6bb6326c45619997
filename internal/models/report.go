package models

import "time"

// TaskReport is the persisted view of one task.
type TaskReport struct {
	Index          int     `json:"index"`
	Input          string  `json:"input"`
	Output         string  `json:"output"`
	Size           uint64  `json:"size"`
	Status         string  `json:"status"`
	Result         string  `json:"result"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Error          string  `json:"error,omitempty"`
}

// Report summarizes one batch run.
type Report struct {
	RunID          string       `json:"run_id"`
	StartedAt      time.Time    `json:"started_at"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
	Verify         bool         `json:"verify"`
	Result         Result       `json:"result"`
	Started        int          `json:"started"`
	Skipped        int          `json:"skipped"`
	Broken         int          `json:"broken"`
	Tasks          []TaskReport `json:"tasks"`
}

// NewTaskReport snapshots a task. Bad pairs are reported as skipped.
func NewTaskReport(t *Task) TaskReport {
	r := TaskReport{
		Index:          t.Index,
		Input:          t.InputPath,
		Output:         t.OutputPath,
		Size:           t.Size,
		Status:         t.Status.String(),
		Result:         t.Result.String(),
		ElapsedSeconds: t.ElapsedSeconds(),
	}
	if t.IsBadPair() {
		r.Status = "skipped"
		r.Result = ""
	}
	if t.Err != nil {
		r.Error = t.Err.Error()
	}
	return r
}
