package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/sirupsen/logrus"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiYlw   = "\033[33m"
	ansiBlue  = "\033[34m"
	ansiGray  = "\033[90m"

	timestampFormat = "15:04:05.000"
)

// TextFormatter renders `time level msg key=value ...` lines, colouring the level when Color is set.
type TextFormatter struct {
	Color bool
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}

	level := FromLogrusLevel(entry.Level)
	name := fmt.Sprintf("%-5s", strings.ToUpper(level.String()))

	if f.Color {
		name = levelColor(level) + name + ansiReset
	}

	fmt.Fprintf(buf, "%s %s %s", entry.Time.Format(timestampFormat), name, entry.Message)

	fields := Fields(entry.Data)
	for _, key := range fields.Keys() {
		fmt.Fprintf(buf, " %s=%v", key, fields[key])
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func levelColor(level Level) string {
	switch level {
	case ErrorLevel:
		return ansiRed
	case WarnLevel:
		return ansiYlw
	case InfoLevel:
		return ansiBlue
	case DebugLevel, TraceLevel:
		return ansiGray
	}

	return ""
}

// JSONFormatter renders one JSON object per entry.
type JSONFormatter struct{}

// Format implements logrus.Formatter.
func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(map[string]any, len(entry.Data)+3)

	for key, val := range entry.Data {
		if err, ok := val.(error); ok {
			val = err.Error()
		}

		data[key] = val
	}

	data[FieldKeyTime] = entry.Time.Format(timestampFormat)
	data[FieldKeyLevel] = FromLogrusLevel(entry.Level).String()
	data[FieldKeyMsg] = entry.Message

	out, err := json.Marshal(data)
	if err != nil {
		return nil, errors.New(err)
	}

	return append(out, '\n'), nil
}

// NewFormatter returns the formatter named by format, "text" or "json".
func NewFormatter(format string, color bool) (logrus.Formatter, error) {
	switch format {
	case "", "text":
		return &TextFormatter{Color: color}, nil
	case "json":
		return &JSONFormatter{}, nil
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: text, json", format)
}
