package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a logger writing to stderr.
// format is "text" (default) or "json"; verbose enables debug output.
func NewLogger(verbose bool, format string) *logrus.Logger {
	return NewLoggerTo(os.Stderr, verbose, format)
}

// NewLoggerTo is NewLogger with an explicit writer
func NewLoggerTo(w io.Writer, verbose bool, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			DisableQuote:     false,
			QuoteEmptyFields: true,
		})
	}

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// Discard returns a logger that drops everything, for tests and quiet paths
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
