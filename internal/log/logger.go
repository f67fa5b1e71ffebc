// Package log provides logging functionality to both console and file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"
)

// FileName is the log file created inside the log directory.
const FileName = "themebuddy.log"

// Logger writes output to both console and a log file.
type Logger struct {
	file   *os.File
	writer io.Writer
	errw   io.Writer
}

// New creates a logger that writes to stdout and to themebuddy.log in logDir.
func New(logDir string) (*Logger, error) {
	return NewWithConsole(logDir, os.Stdout, os.Stderr)
}

// NewWithConsole is New with explicit console writers. Passing io.Discard for
// both keeps a TUI or a stdio protocol stream clean while the file still
// receives every line.
func NewWithConsole(logDir string, stdout, stderr io.Writer) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:   file,
		writer: io.MultiWriter(stdout, file),
		errw:   stderr,
	}, nil
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprint(l.writer, msg)
}

// Println writes a message to console and log file with a newline.
func (l *Logger) Println(args ...interface{}) {
	msg := fmt.Sprintln(args...)
	_, _ = fmt.Fprint(l.writer, msg)
}

// Errorf writes a timestamped error message to stderr and log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	formatted := stamp(fmt.Sprintf(format, args...))
	_, _ = fmt.Fprint(l.errw, formatted)
	_, _ = fmt.Fprint(l.file, formatted)
}

// Path returns the log file location.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func stamp(msg string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	return fmt.Sprintf("[%s] %s", timestamp, msg)
}

// Global logger instance
var globalLogger *Logger

// Init initializes the global logger and points Go's standard log package at
// the log file so stray log.Printf calls never reach the terminal.
func Init(logDir string) error {
	return initWith(New(logDir))
}

// InitQuiet is Init without console output, for the TUI and stdio servers.
func InitQuiet(logDir string) error {
	return initWith(NewWithConsole(logDir, io.Discard, io.Discard))
}

func initWith(logger *Logger, err error) error {
	if err != nil {
		return err
	}
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Default returns the global logger, or nil before Init.
func Default() *Logger {
	return globalLogger
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		err := globalLogger.Close()
		globalLogger = nil
		return err
	}
	return nil
}
