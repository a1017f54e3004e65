package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRE = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} django-project-creator INFO Created project directory: site step="create-directory"$`)

func TestFormatterLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "django-project-creator", "debug")
	logger.WithField("step", "create-directory").Info("Created project directory: site")

	line := strings.TrimRight(buf.String(), "\n")
	assert.Regexp(t, lineRE, line)
}

func TestFormatterSortsFieldsAndRendersErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "x", "debug")
	logger.WithFields(log.Fields{"step": "migrate", "kind": "process"}).WithError(errors.New("exit status 1")).Error("boom")

	got := buf.String()
	assert.Contains(t, got, ` ERROR boom error="exit status 1" kind="process" step="migrate"`)
}

func TestNewInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "x", "chatty")

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "WARNING invalid log level chatty, defaulting to debug")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "x", "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "creator.log")

	for _, msg := range []string{"first run", "second run"} {
		logger, closer, err := Open(path, "django-project-creator", "info")
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "INFO first run"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "INFO second run"), lines[1])
}
