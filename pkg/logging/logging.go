package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RunLogPrefix prefixes the per-run event log kept next to the run reports
const RunLogPrefix = "organizacion_"

// SetupLogger configures the global logger based on verbosity level
// It sets up dual output to both console and logFile. Verbosity sets the
// level of the global logger only: run logs always record every event.
func SetupLogger(verbosity int, logFile string) {
	level := LevelFor(verbosity)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	// Configure console output with pretty printing
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	logFileHandle, err := openAppendFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).Level(level).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// LevelFor maps the -v count to a level: warn, info, debug, then trace
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// openAppendFile creates the file and its parent directories
func openAppendFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

// RunLog is the structured event log of a single organize run. Events are
// written as JSON lines to <dir>/organizacion_<timestamp>.log.
type RunLog struct {
	Logger zerolog.Logger
	Path   string
	file   *os.File
}

// NewRunLog opens the event log for the run identified by timestamp.
// On failure it returns a RunLog with a disabled logger and the error, so the
// caller can keep going without it.
func NewRunLog(dir, timestamp, runID string) (*RunLog, error) {
	path := filepath.Join(dir, RunLogPrefix+timestamp+".log")
	file, err := openAppendFile(path)
	if err != nil {
		return &RunLog{Logger: zerolog.Nop()}, err
	}
	logger := zerolog.New(file).With().
		Timestamp().
		Str("run_id", runID).
		Logger()
	return &RunLog{Logger: logger, Path: path, file: file}, nil
}

// Close flushes and closes the underlying file
func (r *RunLog) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
