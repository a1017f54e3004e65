// Package logging builds the logrus logger behind the per-user log file.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Formatter renders one line per entry:
//
//	15:04:05,000 <name> LEVEL message key=value ...
type Formatter struct {
	Name string
}

func (f *Formatter) Format(e *log.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.Format("15:04:05,000"))
	b.WriteByte(' ')
	b.WriteString(f.Name)
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(e.Level.String()))
	b.WriteByte(' ')
	b.WriteString(strings.TrimRight(e.Message, "\n"))

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := e.Data[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fmt.Fprintf(&b, " %s=%q", k, fmt.Sprint(v))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New returns a logger writing to w at the given level. An unparsable level
// falls back to debug and is reported through the logger itself.
func New(w io.Writer, name, level string) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&Formatter{Name: name})
	logger.SetLevel(log.DebugLevel)
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("invalid log level %s, defaulting to debug", level)
	}
	return logger
}

// Open appends to the log file at path, creating it (and its directory) when
// missing. The file is never truncated or rotated.
func Open(path, name, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return New(f, name, level), f, nil
}
