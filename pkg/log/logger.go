// Package log provides named, leveled loggers on top of go-logging.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level is a logging verbosity threshold
type Level int

// The levels that can be passed to SetLevel, most verbose first.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// Logger is the subset of go-logging's API the packages log through
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// backend state shared by every named logger
var (
	mu      sync.Mutex
	backend logging.LeveledBackend
	current = Notice
)

// New returns the logger for the named module
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all output to sink. The current level is kept.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(toBackendLevel(current), "")
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity for all modules
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	current = level
	backend.SetLevel(toBackendLevel(level), "")
}

// GetLevel returns the verbosity last passed to SetLevel
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// ParseLevel maps a level name (debug, info, notice, warning, error) to a Level
func ParseLevel(name string) (Level, error) {
	lvl, err := logging.LogLevel(name)
	if err != nil {
		return Notice, err
	}
	switch lvl {
	case logging.DEBUG:
		return Debug, nil
	case logging.INFO:
		return Info, nil
	case logging.WARNING:
		return Warning, nil
	case logging.ERROR, logging.CRITICAL:
		return Error, nil
	}
	return Notice, nil
}

func toBackendLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	}
	return logging.NOTICE
}

func init() {
	SetSink(os.Stderr)
}
