package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options controls how the process-wide logger writes entries
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// Setup configures the standard logrus logger and returns it
func Setup(opts Options) (*logrus.Logger, error) {
	log := logrus.StandardLogger()
	if err := Configure(log, opts); err != nil {
		return nil, err
	}
	return log, nil
}

// Configure applies opts to log
func Configure(log *logrus.Logger, opts Options) error {
	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	log.SetLevel(parsed)

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		log.SetOutput(opts.Output)
	} else {
		log.SetOutput(os.Stdout)
	}
	return nil
}

// Discard returns a logger that drops everything, for wiring code paths that need one
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
