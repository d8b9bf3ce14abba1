package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkgenetic/linkid-resolver/internal/logger"
)

func TestNewIsNop(t *testing.T) {
	l := logger.New()
	require.NotNil(t, l.Log)
	// Logging before Init must not panic.
	l.Log.Info("noop")
}

func TestInit(t *testing.T) {
	l := logger.New()

	err := l.Init("info")
	require.NoError(t, err)
	assert.NotNil(t, l.Log)
}

func TestInitBadLevel(t *testing.T) {
	l := logger.New()

	err := l.Init("shouting")
	assert.Error(t, err)
}
