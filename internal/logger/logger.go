package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var log = newConsoleLogger(os.Stdout, os.Stderr)
var logFile *os.File

// quietMode drops info lines even when debug output is on.
var quietMode atomic.Bool

var quietHook = zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.InfoLevel && quietMode.Load() {
		e.Discard()
	}
})

// levelSplitWriter sends warnings and errors to err, everything else to out.
type levelSplitWriter struct {
	out io.Writer
	err io.Writer
}

func (w levelSplitWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w levelSplitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.WarnLevel && level != zerolog.NoLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return fmt.Sprintf("[%s]", i)
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	return output
}

func newConsoleLogger(out, errOut io.Writer) zerolog.Logger {
	w := levelSplitWriter{out: consoleWriter(out), err: consoleWriter(errOut)}
	return zerolog.New(w).Hook(quietHook).With().Timestamp().Logger()
}

// Init sets up console logging: info and debug on stdout, warnings and
// errors on stderr. Quiet drops info lines, debug (or a DEBUG environment
// variable) enables per-task tracing. Both may be set together.
func Init(quiet, debug bool) {
	log = newConsoleLogger(os.Stdout, os.Stderr)
	SetLevel(quiet, debug)
}

// SetLevel applies the quiet/debug switches.
func SetLevel(q, debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	quietMode.Store(q)

	if _, exists := os.LookupEnv("DEBUG"); exists {
		debug = true
	}

	switch {
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case q:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// InitFileOnly initializes the logger to write only to a file (for TUI mode)
func InitFileOnly(logDir string, quiet, debug bool) (string, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, fmt.Sprintf("threadcopy_%s.log", timestamp))

	var err error
	logFile, err = os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	// JSON lines are easier to grep after the run
	log = zerolog.New(logFile).Hook(quietHook).With().Timestamp().Logger()
	SetLevel(quiet, debug)

	Debug("Logger initialized in file-only mode: %s", logPath)
	return logPath, nil
}

// Close closes the log file if it's open
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetOutput sends all console output to w
func SetOutput(w io.Writer) {
	log = newConsoleLogger(w, w)
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	log.Debug().Msgf(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	log.Info().Msgf(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	log.Warn().Msgf(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	log.Error().Msgf(msg, args...)
}
