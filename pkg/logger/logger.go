package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logrus logger: JSON lines on out at the
// given level. Unknown levels fall back to info.
func InitLogger(level string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	logrus.Debug("Logger initialized")
}
