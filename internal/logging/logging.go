// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger *logrus.Logger
)

// Init configures the global logger. Safe to call more than once; later
// calls reconfigure the same instance.
func Init(level string, verbose bool) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = logrus.New()
	}
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	if verbose && parsed < logrus.DebugLevel {
		parsed = logrus.DebugLevel
	}
	logger.SetLevel(parsed)
}

// L returns the configured logger, initializing defaults on first use.
func L() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	L().SetOutput(w)
}
