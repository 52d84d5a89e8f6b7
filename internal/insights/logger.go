package insights

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

// SetLogger routes this package's log output to the given logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}
