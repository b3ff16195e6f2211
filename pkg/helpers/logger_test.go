package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("ats", "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("ats", "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("ats", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("ats", "production", "loud").GetLevel())
}

func TestLogError(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(logger, "send failed", errors.New("smtp down"), logrus.Fields{"to": "a@x.com"})
	LogError(logger, "no cause", nil, nil)

	require.Len(t, hook.Entries, 2)
	first := hook.Entries[0]
	assert.Equal(t, logrus.ErrorLevel, first.Level)
	assert.Equal(t, "a@x.com", first.Data["to"])
	assert.EqualError(t, first.Data[logrus.ErrorKey].(error), "smtp down")
	assert.NotContains(t, hook.Entries[1].Data, logrus.ErrorKey)
}
