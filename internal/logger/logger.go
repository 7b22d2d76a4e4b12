// Package logger provides structured logging for the rating engine.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

const productionEnvironment = "production"

// NewLogger builds a logger for the given level and runtime environment.
// Production gets machine-readable JSON lines; everything else gets colored
// text for terminals. An unparseable level falls back to info.
func NewLogger(logLevel, environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if environment == productionEnvironment {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
	}
	log.SetLevel(level)

	return log
}
