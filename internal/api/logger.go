package api

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger returns the logger used when none is configured. Without debug
// mode nothing is written.
func newLogger(debug bool) logrus.FieldLogger {
	logger := logrus.New()
	if !debug {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.PanicLevel)
		return logger
	}
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "metigan")
}
