package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger builds the run logger writing to w.
// jsonFormat switches to machine-readable records; verbose lowers the level
// to debug so per-attempt client diagnostics become visible.
func newLogger(w io.Writer, jsonFormat, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false})
	}

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
