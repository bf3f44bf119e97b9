package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// TextFormatter formats log entries as human-readable text.
type TextFormatter struct {
	TimestampFormat  string // Format for timestamps
	DisableColors    bool   // Disable color output
	DisableTimestamp bool   // Disable timestamp output
}

// NewTextFormatter creates a new TextFormatter with sensible defaults.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		TimestampFormat: "15:04:05.000",
	}
}

var levelColors = map[Level]*color.Color{
	DebugLevel: color.New(color.FgMagenta),
	InfoLevel:  color.New(color.FgCyan),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
	FatalLevel: color.New(color.FgRed, color.Bold),
}

// Format formats the entry as text.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer

	if !f.DisableTimestamp {
		format := f.TimestampFormat
		if format == "" {
			format = "15:04:05.000"
		}
		buf.WriteString(entry.Timestamp.Format(format))
		buf.WriteByte(' ')
	}

	level := fmt.Sprintf("%-5s", entry.Level.String())
	if c, ok := levelColors[entry.Level]; ok && !f.DisableColors {
		level = c.Sprint(level)
	}
	buf.WriteString(level)
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	for _, k := range sortedFieldKeys(entry.Fields) {
		buf.WriteString(fmt.Sprintf(" %s=%v", k, entry.Fields[k]))
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// JSONFormatter formats log entries as JSON, one object per line.
type JSONFormatter struct {
	TimestampFormat string // Format for timestamps
}

// Format formats the entry as JSON.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+3)

	format := time.RFC3339
	if f.TimestampFormat != "" {
		format = f.TimestampFormat
	}
	data["timestamp"] = entry.Timestamp.Format(format)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	for k, v := range entry.Fields {
		// Don't overwrite standard fields
		if k != "timestamp" && k != "level" && k != "message" {
			data[k] = v
		}
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
