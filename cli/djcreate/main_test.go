package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"one", "two"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg")
}

// A dry run exercises config, logging and planning end to end without
// touching python or the network.
func TestDryRunCreatesNothing(t *testing.T) {
	work := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "creator.log")
	t.Setenv("DJCREATE_LOG_FILE", logFile)
	t.Setenv("DJCREATE_DRY_RUN", "true")
	t.Setenv("DJCREATE_DEBUG", "false")
	t.Setenv("DJCREATE_FETCH_TIMEOUT", "0s")

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { os.Chdir(prev) })

	cmd := newRootCmd()
	cmd.SetArgs([]string{"planned-site"})
	require.NoError(t, cmd.Execute())

	_, statErr := os.Stat(filepath.Join(work, "planned-site"))
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the project directory")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "INFO Starting Django Project Creator")
	assert.Contains(t, log, "INFO Project name: planned-site")
	assert.Contains(t, log, "Dry run: plan printed, nothing executed")
	for _, line := range strings.Split(strings.TrimSpace(log), "\n") {
		assert.Contains(t, line, "django-project-creator")
		assert.Contains(t, line, ` run="`)
	}
}
