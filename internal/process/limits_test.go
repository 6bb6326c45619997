package process

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureOpenFilesWithinLimit(t *testing.T) {
	assert.NoError(t, EnsureOpenFiles(2))
	assert.NoError(t, EnsureOpenFiles(0))
}

func TestEnsureOpenFilesAboveHardLimit(t *testing.T) {
	_, max, err := OpenFilesLimit()
	require.NoError(t, err)
	if max == math.MaxUint64 {
		t.Skip("open files limit is unlimited")
	}

	err = EnsureOpenFiles(max + 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOpenFilesLimit))

	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, max+1, limitErr.Needed)
	assert.Contains(t, err.Error(), "ulimit -n")
}
