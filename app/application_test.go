package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_ConfigurationFailure(t *testing.T) {
	// An empty API key fails configuration validation before anything
	// touches the database
	t.Setenv("LLAMA_API_KEY", "")
	t.Setenv("OPENWEATHER_API_KEY", "test-key")

	application, err := NewApplication()

	require.Error(t, err)
	assert.Nil(t, application)
	assert.Contains(t, err.Error(), "load application configuration")
}

func TestApplication_ShutdownWithoutDatabase(t *testing.T) {
	app := &Application{}

	assert.NoError(t, app.Shutdown())
}
