package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

// Recorder receives failures that were absorbed instead of returned.
type Recorder interface {
	Recoverable(msg string, fields Fields, err error)
}

type Logger struct {
	console *logrus.Logger
	errLog  *logrus.Logger
	closer  io.Closer
}

func New() *Logger {
	console := logrus.New()
	console.SetOutput(os.Stderr)
	return &Logger{console: console}
}

// Open returns a logger that also appends errors to the file at errPath.
// The file is kept open until Close.
func Open(errPath, level string) (*Logger, error) {
	l := New()
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		l.console.SetLevel(lvl)
	}
	if errPath == "" {
		return l, nil
	}
	f, err := os.OpenFile(errPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open error log: %w", err)
	}
	l.errLog = newErrorLog(f)
	l.closer = f
	return l, nil
}

func newErrorLog(w io.Writer) *logrus.Logger {
	el := logrus.New()
	el.SetOutput(w)
	el.SetLevel(logrus.ErrorLevel)
	el.SetFormatter(&timestampFormatter{})
	return el
}

// Discard returns a logger that writes nowhere. Used by tests.
func Discard() *Logger {
	console := logrus.New()
	console.SetOutput(io.Discard)
	return &Logger{console: console}
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) Debugf(format string, args ...any) {
	l.console.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.console.Infof(format, args...)
}

// Errorf logs to the console and, when configured, to the error log.
func (l *Logger) Errorf(format string, args ...any) {
	l.console.Errorf(format, args...)
	if l.errLog != nil {
		l.errLog.Errorf(format, args...)
	}
}

func (l *Logger) Recoverable(msg string, fields Fields, err error) {
	l.console.WithFields(fields).WithError(err).Debug(msg)
}

// timestampFormatter writes "<timestamp> <message> key=value..." lines.
type timestampFormatter struct{}

func (f *timestampFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.Format("2006-01-02 15:04:05,000"))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
