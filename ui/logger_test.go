package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConsoleFormatter(t *testing.T) {
	tests := []struct {
		name  string
		level logrus.Level
		data  logrus.Fields
		want  string
	}{
		{"info", logrus.InfoLevel, nil, "[INFO] hello\n"},
		{"success", logrus.InfoLevel, logrus.Fields{SuccessKey: true, "frames": 20}, "[SUCCESS] hello frames=20\n"},
		{"warning", logrus.WarnLevel, logrus.Fields{"video": "a.mp4"}, "[WARNING] hello video=a.mp4\n"},
		{"error sorted fields", logrus.ErrorLevel, logrus.Fields{"video": "b.mp4", "error": errors.New("boom")}, "[ERROR] hello error=boom video=b.mp4\n"},
		{"quoted value", logrus.DebugLevel, logrus.Fields{"video": "my clip.mp4"}, "[DEBUG] hello video=\"my clip.mp4\"\n"},
	}

	f := &ConsoleFormatter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &logrus.Entry{Level: tt.level, Message: "hello", Data: tt.data}
			if entry.Data == nil {
				entry.Data = logrus.Fields{}
			}
			out, err := f.Format(entry)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, logrus.WarnLevel, false)

	log.Info("hidden")
	log.WithField(SuccessKey, true).Info("hidden too")
	log.Warn("shown")

	assert.Equal(t, "[WARNING] shown\n", buf.String())
}
