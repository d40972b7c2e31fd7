// Package log is a thin logrus facade. Nothing is emitted unless logs.write is enabled.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/key"
	"github.com/kurasora/kurasora/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var logger = silent()

func silent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup points the logger at a daily file under where.Logs(), or silences it
// when logs.write is off.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = silent()
		return nil
	}

	name := time.Now().Format("2006-01-02") + ".log"
	file, err := filesystem.API().OpenFile(
		filepath.Join(where.Logs(), name),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0o666,
	)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(file)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// Enabled reports whether Setup turned logging on.
func Enabled() bool {
	return logger.Out != io.Discard
}

// Provider returns an entry tagged with the provider name.
func Provider(name string) *logrus.Entry {
	return logger.WithField("provider", name)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
