package ui

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lepinkainen/vidframes/types"
	"github.com/sirupsen/logrus"
)

// SuccessKey marks entries rendered with the SUCCESS label.
const SuccessKey = types.SuccessField

// ConsoleFormatter prints "[LEVEL] message key=value" lines. Styled output uses the
// lipgloss styles; plain output is meant for log files.
type ConsoleFormatter struct {
	Styled bool
}

// Format implements logrus.Formatter.
func (f *ConsoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	label, style := levelLabel(entry)
	if f.Styled {
		b.WriteString(style.Render("[" + label + "]"))
	} else {
		b.WriteString("[" + label + "]")
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == SuccessKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field := fmt.Sprintf("%s=%v", k, entry.Data[k])
		if strings.ContainsAny(fmt.Sprint(entry.Data[k]), " \t") {
			field = fmt.Sprintf("%s=%q", k, fmt.Sprint(entry.Data[k]))
		}
		b.WriteByte(' ')
		if f.Styled {
			b.WriteString(FieldStyle.Render(field))
		} else {
			b.WriteString(field)
		}
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelLabel(entry *logrus.Entry) (string, lipgloss.Style) {
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR", ErrorStyle
	case logrus.WarnLevel:
		return "WARNING", WarnStyle
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", DebugStyle
	}
	if ok, _ := entry.Data[SuccessKey].(bool); ok {
		return "SUCCESS", SuccessStyle
	}
	return "INFO", InfoStyle
}

// NewLogger returns a logger writing console lines to out.
func NewLogger(out io.Writer, level logrus.Level, styled bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&ConsoleFormatter{Styled: styled})
	return log
}
