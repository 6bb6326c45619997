package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/kelsos/threadcopy/internal/async"
	"github.com/kelsos/threadcopy/internal/config"
	"github.com/kelsos/threadcopy/internal/copier"
	"github.com/kelsos/threadcopy/internal/filelist"
	"github.com/kelsos/threadcopy/internal/logger"
	"github.com/kelsos/threadcopy/internal/models"
	"github.com/kelsos/threadcopy/internal/process"
	"github.com/kelsos/threadcopy/internal/storage"
)

// WorkerFunc runs one task to completion and must leave it Done.
type WorkerFunc func(task *models.Task)

// runObserver is implemented by observers that track overall progress.
type runObserver interface {
	RunStarted(total int)
}

// CopyService builds copy tasks, launches one worker per valid pair and
// waits for all of them.
type CopyService struct {
	config   *config.Config
	worker   WorkerFunc
	observer async.Observer
}

// NewCopyService creates a copy service with the given configuration
func NewCopyService(cfg *config.Config) *CopyService {
	s := &CopyService{config: cfg}
	s.worker = func(task *models.Task) {
		copier.Run(task, s.config.BufferSize)
	}
	return s
}

// SetWorker replaces the function executed for each task.
func (s *CopyService) SetWorker(fn WorkerFunc) {
	s.worker = fn
}

// SetObserver registers an observer for task lifecycle events.
func (s *CopyService) SetObserver(o async.Observer) {
	s.observer = o
}

// GetConfig returns the current configuration
func (s *CopyService) GetConfig() *config.Config {
	return s.config
}

// BuildTasks creates one task per pair. Pairs whose input cannot be opened
// become bad pairs: they keep their slot but are never started.
func (s *CopyService) BuildTasks(inputs, outputs []string) ([]*models.Task, int, error) {
	if len(inputs) != len(outputs) {
		return nil, 0, fmt.Errorf("%w: input file count %d does not match output file count %d",
			filelist.ErrCountMismatch, len(inputs), len(outputs))
	}

	logger.Debug("---------------------------")
	for i := range inputs {
		logger.Debug("i[%04d]: %s  o[%04d]: %s", i, inputs[i], i, outputs[i])
	}
	logger.Debug("---------------------------")

	tasks := make([]*models.Task, len(inputs))
	skipped := 0
	for i := range inputs {
		size, err := copier.Probe(inputs[i])
		if err != nil {
			logger.Warn("Input file not found: %s, skipping output file: %s", inputs[i], outputs[i])
			tasks[i] = models.NewBadPair(i)
			skipped++
			continue
		}
		tasks[i] = models.NewTask(i, inputs[i], outputs[i], size, s.config.Verify)
	}

	return tasks, skipped, nil
}

type submitFunc func(func()) error

// submitter returns how workers get started: a goroutine each, or a
// bounded ants pool when MaxWorkers is set.
func (s *CopyService) submitter() (submitFunc, func(), error) {
	if s.config.MaxWorkers <= 0 {
		return func(fn func()) error {
			go fn()
			return nil
		}, func() {}, nil
	}

	pool, err := ants.NewPool(s.config.MaxWorkers)
	if err != nil {
		return nil, nil, fmt.Errorf("create worker pool failed: %w", err)
	}
	logger.Debug("Limiting concurrent copies to %d workers", s.config.MaxWorkers)
	return pool.Submit, pool.Release, nil
}

// Launch starts a worker for every valid task. It returns how many were
// started and how many could not be started.
func (s *CopyService) Launch(tasks []*models.Task, monitor *async.Monitor, submit submitFunc) (int, int) {
	started, broken := 0, 0

	for _, task := range tasks {
		if task.IsBadPair() {
			logger.Debug("Skipped bad file pair thread: [%04d]", task.Index)
			continue
		}

		logger.Debug("Creating thread [%04d] with file copy: %s -> %s", task.Index, task.InputPath, task.OutputPath)
		if err := monitor.Start(task); err != nil {
			logger.Error("Error creating thread [%04d]: %v", task.Index, err)
			broken++
			continue
		}

		err := submit(func() {
			s.worker(task)
			monitor.Finish(task)
		})
		if err != nil {
			monitor.Abandon(task)
			logger.Error("Error creating thread [%04d]: %v", task.Index, err)
			broken++
			continue
		}
		started++
	}

	return started, broken
}

// Run copies inputs[i] to outputs[i] for every i and returns the run report.
// The report's Result is the last failure observed, or OK.
func (s *CopyService) Run(inputs, outputs []string) (*models.Report, error) {
	runID := uuid.NewString()
	logger.Debug("Run %s with %d file pair(s)", runID, len(inputs))

	tasks, skipped, err := s.BuildTasks(inputs, outputs)
	if err != nil {
		return nil, err
	}

	if err := process.EnsureOpenFiles(uint64(len(inputs) + len(outputs))); err != nil {
		return nil, err
	}

	submit, release, err := s.submitter()
	if err != nil {
		return nil, err
	}
	defer release()

	if o, ok := s.observer.(runObserver); ok {
		o.RunStarted(len(tasks) - skipped)
	}

	startedAt := time.Now()

	monitor := async.NewMonitor(len(tasks))
	if s.observer != nil {
		monitor.SetObserver(s.observer)
	}

	logger.Info("Starting thread processing.")
	started, broken := s.Launch(tasks, monitor, submit)
	logger.Info("Started %d file copy threads.", started)

	result := monitor.Wait()
	elapsed := time.Since(startedAt)

	if s.config.Verify {
		logger.Info("All files copied and verified in %f second(s).", elapsed.Seconds())
	} else {
		logger.Info("All files copied in %f second(s).", elapsed.Seconds())
	}

	report := &models.Report{
		RunID:          runID,
		StartedAt:      startedAt,
		ElapsedSeconds: elapsed.Seconds(),
		Verify:         s.config.Verify,
		Result:         result,
		Started:        started,
		Skipped:        skipped,
		Broken:         broken,
		Tasks:          make([]models.TaskReport, 0, len(tasks)),
	}
	for i, task := range tasks {
		row := models.NewTaskReport(task)
		if task.IsBadPair() {
			// the task itself keeps blank paths, the report names what was skipped
			row.Input, row.Output = inputs[i], outputs[i]
		}
		report.Tasks = append(report.Tasks, row)
	}

	if s.config.ReportPath != "" {
		if err := storage.SaveReport(s.config.ReportPath, report); err != nil {
			logger.Error("Failed to save report: %v", err)
		} else {
			logger.Debug("Report saved to %s", s.config.ReportPath)
		}
	}

	return report, nil
}
