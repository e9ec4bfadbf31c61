// Package logging configures logrus for the CLI and provides the per-session
// log file.
package logging

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Exported constants.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the level and formatter applied to a logger.
type Config struct {
	logger *logrus.Logger
	level  logrus.Level
	format logrus.Formatter
}

// NewConfig returns a Config defaulting to info level, text format.
func NewConfig(logger *logrus.Logger) *Config {
	return &Config{
		logger: logger,
		level:  logrus.InfoLevel,
		format: newFormatter(FormatText),
	}
}

// SetLevel parses a logrus level name.
func (c *Config) SetLevel(levelString string) error {
	level, err := logrus.ParseLevel(levelString)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	c.level = level

	return nil
}

// SetFormat selects a formatter by name.
func (c *Config) SetFormat(format string) error {
	format = strings.ToLower(format)
	if !slices.Contains(FormatNames(), format) {
		return fmt.Errorf("unknown log format %q, expected one of: %v", format, FormatNames())
	}

	c.format = newFormatter(format)

	return nil
}

// Apply pushes the level and formatter to the logger.
func (c *Config) Apply() {
	c.logger.SetFormatter(c.format)
	c.logger.SetLevel(c.level)
}

// Logger returns the configured logger.
func (c *Config) Logger() *logrus.Logger {
	return c.logger
}

// FormatNames lists the accepted --log-format values.
func FormatNames() []string {
	return []string{FormatText, FormatJSON}
}

// Discard returns a logger that drops everything.
func Discard() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}

// Tee returns a logger that writes every entry as JSON to w, at debug level,
// and forwards it to base, where base's own level applies.
func Tee(base logrus.FieldLogger, w io.Writer) logrus.FieldLogger {
	fileLogger := logrus.New()
	fileLogger.SetOutput(w)
	fileLogger.SetFormatter(newFormatter(FormatJSON))
	fileLogger.SetLevel(logrus.DebugLevel)
	fileLogger.AddHook(&forwardHook{base: base})

	return fileLogger
}

func newFormatter(name string) logrus.Formatter {
	if name == FormatJSON {
		return new(logrus.JSONFormatter)
	}

	return &logrus.TextFormatter{FullTimestamp: true}
}

// forwardHook replays entries on another logger.
type forwardHook struct {
	base logrus.FieldLogger
}

func (h *forwardHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *forwardHook) Fire(entry *logrus.Entry) error {
	logger := h.base.WithFields(lo.Assign(logrus.Fields{}, entry.Data))

	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		logger.Error(entry.Message)
	case logrus.WarnLevel:
		logger.Warn(entry.Message)
	case logrus.InfoLevel:
		logger.Info(entry.Message)
	case logrus.DebugLevel, logrus.TraceLevel:
		logger.Debug(entry.Message)
	}

	return nil
}
