package log

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
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
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// Used for sinks that are not terminals.
var plainFormat = logging.MustStringFormatter(
	`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

var levelNames = [...]string{"debug", "info", "notice", "warning", "error"}

var ErrUnknownLevel = errors.New("log: unknown level")

var leveledBackend logging.LeveledBackend

// Logger is the leveled logger used by every package of the renderer.
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

// New creates a named logger. The name shows up in the module column.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// ParseLevel converts a level name (debug, info, notice, warning, error) to
// a Level.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}
	return Notice, errors.Wrap(ErrUnknownLevel, name)
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func isTerminal(sink io.Writer) bool {
	f, ok := sink.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// SetSink redirects all loggers to sink. Colors are only used when sink is a
// terminal. The level is reset to Info and module levels are dropped.
func SetSink(sink io.Writer) {
	f := plainFormat
	if isTerminal(sink) {
		f = format
	}
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, f)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

func (l Level) backend() logging.Level {
	switch l {
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

// SetLevel sets logger verbosity for all modules without a level of their own.
func SetLevel(level Level) {
	leveledBackend.SetLevel(level.backend(), "")
}

// SetModuleLevel sets the verbosity of a single named logger.
func SetModuleLevel(level Level, module string) {
	leveledBackend.SetLevel(level.backend(), module)
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
