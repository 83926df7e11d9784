// Package log provides named leveled loggers shared by the meshsdf
// packages and command line tools.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is implemented by the loggers returned by New.
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

// New creates a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink overrides the output of all loggers. The current level is kept.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}
	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of all loggers.
func SetLevel(level Level) {
	var loggerLevel logging.Level
	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	default:
		loggerLevel = logging.ERROR
	}
	leveledBackend.SetLevel(loggerLevel, "")
}

func init() {
	// Standard output may carry volume data, keep logs on stderr.
	SetSink(os.Stderr)
	SetLevel(Notice)
}
