package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logger  = log.New(io.Discard, "", 0)
	logFile *os.File
)

// Init opens a timestamped log file in dir. Until it is called, log output is discarded
// because the TUI owns the terminal.
func Init(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		// If we can't create log dir, just use stderr
		logger = log.New(os.Stderr, "[cli] ", log.LstdFlags|log.Lshortfile)
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	name := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger = log.New(os.Stderr, "[cli] ", log.LstdFlags|log.Lshortfile)
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = log.New(logFile, "[cli] ", log.LstdFlags|log.Lshortfile)
	return nil
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "[cli] ", 0)
}

// Log writes a log message
func Log(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	logger.Output(2, fmt.Sprintf(format, v...))
}

// LogError writes an error log message
func LogError(err error, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	msg := fmt.Sprintf(format, v...)
	logger.Output(2, fmt.Sprintf("ERROR: %s: %v", msg, err))
}

// CloseLog closes the log file
func CloseLog() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = log.New(io.Discard, "", 0)
}
