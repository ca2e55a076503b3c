// ABOUTME: Structured file logging for inkwell built on logrus.
// ABOUTME: Logs go to a file because the TUI owns the terminal; sensitive fields are masked.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// sensitiveFields are masked before an entry is written.
var sensitiveFields = []string{"token", "password", "authorization"}

// New builds a JSON logger writing to path at the given level.
// The returned close func releases the file.
func New(level, path string) (*logrus.Logger, func() error, error) {
	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := newLogger(f, lvl)
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything. Used in tests and when
// the log file cannot be opened.
func Discard() *logrus.Logger {
	return newLogger(io.Discard, logrus.PanicLevel)
}

func newLogger(w io.Writer, lvl logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(maskHook{})
	return logger
}

// maskHook replaces values of sensitive fields with a fixed mask.
type maskHook struct{}

func (maskHook) Levels() []logrus.Level { return logrus.AllLevels }

func (maskHook) Fire(entry *logrus.Entry) error {
	for key := range entry.Data {
		if isSensitive(key) {
			entry.Data[key] = mask(fmt.Sprint(entry.Data[key]))
		}
	}
	return nil
}

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveFields {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// mask keeps the last four characters of long values.
func mask(v string) string {
	if len(v) <= 8 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}
