package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		log, err := New(level, "production")
		require.NoError(t, err, "level %q", level)
		require.NotNil(t, log)
	}
}

func TestNewDevelopmentEnvironment(t *testing.T) {
	log, err := New("debug", "development")
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("shout", "production")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
