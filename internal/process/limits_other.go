//go:build !unix

package process

import "math"

// EnsureOpenFiles is a no-op on platforms without RLIMIT_NOFILE.
func EnsureOpenFiles(needed uint64) error {
	return nil
}

// OpenFilesLimit reports no limit on platforms without RLIMIT_NOFILE.
func OpenFilesLimit() (uint64, uint64, error) {
	return math.MaxUint64, math.MaxUint64, nil
}
