package logging

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"Warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel}, // Unknown falls back to info
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, parseLevel(tc.input), "Mismatch for input: %s", tc.input)
	}
}

func TestInit(t *testing.T) {
	defer Init("info")

	Init("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Init("error")
	assert.Equal(t, logrus.ErrorLevel, Log.GetLevel())
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
