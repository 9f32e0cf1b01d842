package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_MissingAPIKey(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Setenv("GEMINI_API_KEY", "")
	os.Args = []string{"glean", "version"}

	// Component wiring fails before the CLI runs when no API key is set.
	exitCode := run()
	assert.Equal(t, 1, exitCode)
}
