package utils

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	TraceLevel LogLevel = iota + 1
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	NoLevel
)

func (l LogLevel) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case NoLevel:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

var (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func levelColor(l LogLevel) string {
	switch l {
	case TraceLevel:
		return colorDim
	case DebugLevel:
		return colorCyan
	case InfoLevel:
		return colorGreen
	case WarnLevel:
		return colorYellow
	case ErrorLevel:
		return colorRed
	}
	return colorReset
}

// Logger is a small leveled logger with a prefix and structured fields. It is
// safe for concurrent use; With* methods return clones and never mutate the
// receiver.
type Logger struct {
	mu     sync.RWMutex
	level  LogLevel
	prefix string
	output io.Writer
	fields map[string]any
	err    error
	color  bool
}

func NewLogger(prefix string) *Logger {
	return &Logger{
		level:  InfoLevel,
		prefix: prefix,
		output: os.Stderr,
		fields: make(map[string]any),
		color:  true,
	}
}

func (l *Logger) SetLevel(level LogLevel) *Logger {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
	return l
}

func (l *Logger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.mu.Lock()
	l.output = w
	l.mu.Unlock()
	return l
}

func (l *Logger) SetColor(enabled bool) *Logger {
	l.mu.Lock()
	l.color = enabled
	l.mu.Unlock()
	return l
}

func (l *Logger) Clone() *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	clone := &Logger{
		level:  l.level,
		prefix: l.prefix,
		output: l.output,
		fields: make(map[string]any, len(l.fields)),
		err:    l.err,
		color:  l.color,
	}
	maps.Copy(clone.fields, l.fields)
	return clone
}

func (l *Logger) WithPrefix(prefix string) *Logger {
	clone := l.Clone()
	if l.prefix != "" {
		clone.prefix = l.prefix + " " + prefix
	} else {
		clone.prefix = prefix
	}
	return clone
}

func (l *Logger) WithField(key string, value any) *Logger {
	clone := l.Clone()
	clone.fields[key] = value
	return clone
}

func (l *Logger) WithError(err error) *Logger {
	clone := l.Clone()
	clone.err = err
	return clone
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level || l.level == NoLevel {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteString(" ")
	if l.color {
		b.WriteString(levelColor(level))
	}
	b.WriteString(fmt.Sprintf("%-5s", level.String()))
	if l.color {
		b.WriteString(colorReset)
	}
	if l.prefix != "" {
		b.WriteString(" [" + l.prefix + "]")
	}
	b.WriteString(" " + msg)
	for k, v := range l.fields {
		b.WriteString(fmt.Sprintf(" %s=%v", k, v))
	}
	if l.err != nil {
		b.WriteString(" error=" + l.err.Error())
	}
	b.WriteString("\n")

	fmt.Fprint(l.output, b.String())
}

func (l *Logger) Trace(format string, args ...any) { l.log(TraceLevel, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.log(DebugLevel, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(InfoLevel, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(WarnLevel, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(ErrorLevel, format, args...) }
