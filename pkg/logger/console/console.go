package console

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ConsoleLogger writes to a terminal or a log collector through
// charmbracelet/log.
type ConsoleLogger struct {
	logger *log.Logger
}

type ConsoleLoggerParams struct {
	// Service prefixes every line, e.g. "server" or "worker".
	Service string
	Debug   bool
	// Level overrides Debug when set ("debug", "info", "warn", "error").
	Level string
	// Format is "text" (default) or "json", one object per line.
	Format string
	// Output defaults to stderr.
	Output io.Writer
}

func (p ConsoleLoggerParams) level() log.Level {
	if p.Level != "" {
		if lvl, err := log.ParseLevel(p.Level); err == nil {
			return lvl
		}
	}
	if p.Debug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func (p ConsoleLoggerParams) formatter() log.Formatter {
	switch strings.ToLower(strings.TrimSpace(p.Format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleLogger{
		logger: log.NewWithOptions(out, log.Options{
			ReportTimestamp: true,
			Prefix:          params.Service,
			Level:           params.level(),
			Formatter:       params.formatter(),
		}),
	}
}

func (c *ConsoleLogger) Log(message string, keyvals ...any) {
	c.logger.Print(message, keyvals...)
}

func (c *ConsoleLogger) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

func (c *ConsoleLogger) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

func (c *ConsoleLogger) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

func (c *ConsoleLogger) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

// Fatal logs and exits with status 1.
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
