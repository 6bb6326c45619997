package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kelsos/threadcopy/internal/logger"
)

// EnvFiles returns the .env candidates: the working directory first, then
// the directory holding the executable.
func EnvFiles() []string {
	files := []string{".env"}

	execPath, err := os.Executable()
	if err != nil {
		logger.Debug("Could not determine executable path: %v", err)
		return files
	}

	appEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if abs, err := filepath.Abs(".env"); err == nil && abs == appEnv {
		return files
	}
	return append(files, appEnv)
}

// LoadEnvironment loads THREADCOPY_* settings from the given .env files.
// Variables already set in the environment are never overridden, and
// missing files are skipped. It returns the files that were loaded.
func LoadEnvironment(files ...string) []string {
	var loaded []string
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("Failed to load env file %s: %v", path, err)
			continue
		}
		logger.Debug("Loaded env file %s", path)
		loaded = append(loaded, path)
	}
	return loaded
}
