// Package errlog writes timestamped error log files and prunes old ones.
// Setup is lazy: no log directory is created until the first error arrives.
package errlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	filePrefix  = "error_log_"
	fileSuffix  = ".txt"
	stampLayout = "20060102_150405"
)

// ErrorLogger appends error lines to a per-session log file under Dir and
// deletes files older than the retention period.
type ErrorLogger struct {
	Dir        string
	DaysToKeep int

	mu       sync.Mutex
	file     *os.File
	filePath string
}

// New creates an error logger with the given log directory and retention.
func New(dir string, daysToKeep int) *ErrorLogger {
	if daysToKeep <= 0 {
		daysToKeep = 30
	}
	return &ErrorLogger{Dir: dir, DaysToKeep: daysToKeep}
}

// setupOnError creates the logs folder and the session file only when an
// error actually occurs.
func (l *ErrorLogger) setupOnError() error {
	if l.file != nil {
		return nil
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", l.Dir, err)
	}
	l.filePath = filepath.Join(l.Dir, filePrefix+time.Now().Format(stampLayout)+fileSuffix)
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", l.filePath, err)
	}
	l.file = f
	return nil
}

// LogError appends one error line, setting up the session file first if
// needed.
func (l *ErrorLogger) LogError(msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.setupOnError(); err != nil {
		return err
	}
	line := fmt.Sprintf("%s - ERROR - %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)
	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return nil
}

// FilePath returns the session log file path, or "" before the first error.
func (l *ErrorLogger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filePath
}

// Close closes the session log file if one was opened.
func (l *ErrorLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// CleanupOldLogs deletes log files older than the retention period. A log
// directory that was never created is not an error.
func (l *ErrorLogger) CleanupOldLogs() error {
	entries, err := os.ReadDir(l.Dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read log directory %s: %w", l.Dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -l.DaysToKeep)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		ts, err := time.Parse(stampLayout, stamp)
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			os.Remove(filepath.Join(l.Dir, name))
		}
	}
	return nil
}
