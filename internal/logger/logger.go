// Package logger provides the structured logrus logger used across the service.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var defaultLogger = New(logrus.InfoLevel, os.Stdout)

// New creates a JSON logger writing entries at or above level to out.
func New(level logrus.Level, out io.Writer) *logrus.Logger {
	return &logrus.Logger{
		Out:       out,
		Formatter: new(logrus.JSONFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}
}

// Configure replaces the default logger with one at the named level and returns it.
func Configure(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	defaultLogger = New(lvl, os.Stdout)
	return defaultLogger, nil
}

// Default returns the package default logger.
func Default() *logrus.Logger {
	return defaultLogger
}

// Info logs message at Info level.
func Info(msg string) {
	defaultLogger.Infoln(msg)
}

// Warn logs message at Warn level.
func Warn(msg string) {
	defaultLogger.Warnln(msg)
}

// Error logs errors at Error level.
func Error(err error) {
	defaultLogger.Errorln(err)
}
