//go:build unix

package process

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/kelsos/threadcopy/internal/logger"
)

// EnsureOpenFiles raises the soft RLIMIT_NOFILE to at least needed.
// It fails with a *LimitError when the hard limit is lower than needed.
func EnsureOpenFiles(needed uint64) error {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return fmt.Errorf("failed to read open files limit: %w", err)
	}

	if uint64(rl.Cur) >= needed {
		return nil
	}

	if needed > uint64(rl.Max) {
		return &LimitError{Needed: needed, Max: uint64(rl.Max)}
	}

	rl.Cur = rl.Max
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return fmt.Errorf("failed to raise open files limit to %d: %w", needed, err)
	}

	logger.Debug("Max open files set to: %d", rl.Cur)
	return nil
}

// OpenFilesLimit returns the current soft and hard open-file limits.
func OpenFilesLimit() (uint64, uint64, error) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, 0, fmt.Errorf("failed to read open files limit: %w", err)
	}
	return uint64(rl.Cur), uint64(rl.Max), nil
}
