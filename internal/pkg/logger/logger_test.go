package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/canteen-backend/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "json debug", level: "debug", format: "json", wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "text warn", level: "warn", format: "text", wantLevel: logrus.WarnLevel},
		{name: "bad level falls back to info", level: "loud", format: "text", wantLevel: logrus.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Logging: config.LoggingConfig{Level: tc.level, Format: tc.format}}
			l := New(cfg)

			assert.Equal(t, tc.wantLevel, l.GetLevel())
			_, isJSON := l.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tc.wantJSON, isJSON)
		})
	}
}
