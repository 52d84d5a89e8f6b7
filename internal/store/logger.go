package store

import (
	"io"

	"github.com/sirupsen/logrus"
)

var log = newQuietLogger()

func newQuietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger replaces the package logger. The default discards everything so
// library consumers opt in to store-level logging.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}
