package process

import (
	"errors"
	"fmt"
)

// ErrOpenFilesLimit is returned when the hard open-file ceiling is below
// what the batch needs.
var ErrOpenFilesLimit = errors.New("open files limit too low")

// LimitError describes an open-file ceiling that cannot be raised far enough.
type LimitError struct {
	Needed uint64
	Max    uint64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("the max number of open files is %d, %d needed; run 'ulimit -n %d'", e.Max, e.Needed, e.Needed)
}

func (e *LimitError) Unwrap() error {
	return ErrOpenFilesLimit
}
