package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("THREADCOPY_TEST_BUFFER=8192\nTHREADCOPY_TEST_KEEP=fromfile\n"), 0644))

	t.Setenv("THREADCOPY_TEST_KEEP", "fromenv")
	t.Cleanup(func() { os.Unsetenv("THREADCOPY_TEST_BUFFER") })

	loaded := LoadEnvironment(filepath.Join(dir, "missing.env"), envFile)

	assert.Equal(t, []string{envFile}, loaded)
	assert.Equal(t, "8192", os.Getenv("THREADCOPY_TEST_BUFFER"))
	assert.Equal(t, "fromenv", os.Getenv("THREADCOPY_TEST_KEEP"), "existing variables win over .env")
}

func TestEnvFiles(t *testing.T) {
	files := EnvFiles()
	require.NotEmpty(t, files)
	assert.Equal(t, ".env", files[0])
}
