package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// GetLogger returns the process-wide logger. Packages grab it in init(), so the
// instance is created on first use and InitLogger only adjusts it afterwards.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.SetLevel(logrus.InfoLevel)
	})
	return logger
}

// InitLogger sets the level of the shared logger.
func InitLogger(level logrus.Level) {
	GetLogger().SetLevel(level)
}

// ParseLevel maps a config value to a logrus level. Unknown values fall back to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return logrus.TraceLevel
	case "warning":
		return logrus.WarnLevel
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
