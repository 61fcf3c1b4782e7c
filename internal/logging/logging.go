// Package logging configures the shared logrus logger and hands out
// component-scoped entries.
package logging

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is the component-scoped handle passed to packages that log.
type Entry = logrus.Entry

var (
	mu         sync.RWMutex
	rootLogger = newLogger(io.Discard, logrus.InfoLevel)
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(PlainFormatter{})
	return l
}

// Configure routes the shared logger to out at the named level ("debug",
// "info", "warn", ...). A nil writer keeps logging silent.
func Configure(level string, out io.Writer) error {
	parsed := logrus.InfoLevel
	if strings.TrimSpace(level) != "" {
		var err error
		parsed, err = logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("logging: %w", err)
		}
	}
	if out == nil {
		out = io.Discard
	}
	mu.Lock()
	rootLogger = newLogger(out, parsed)
	mu.Unlock()
	return nil
}

// Root returns the shared logger.
func Root() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return rootLogger
}

// Named returns an entry tagged with the component field.
func Named(component string) *Entry {
	entry := logrus.NewEntry(Root())
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

// Discard returns an entry that drops everything, for callers that were not
// given a logger.
func Discard() *Entry {
	return logrus.NewEntry(newLogger(io.Discard, logrus.PanicLevel))
}

// PlainFormatter writes "[timestamp] [LEVEL] [component] message k=v".
type PlainFormatter struct{}

// Format implements logrus.Formatter.
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	parts := make([]string, 0, 5)
	parts = append(parts, fmt.Sprintf("[%s]", entry.Time.UTC().Format(time.RFC3339Nano)))
	parts = append(parts, fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))
	if component, ok := entry.Data["component"].(string); ok && component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	parts = append(parts, entry.Message)
	if fields := formatFields(entry.Data); fields != "" {
		parts = append(parts, fields)
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "component" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
