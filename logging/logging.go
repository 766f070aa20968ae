package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// InitLogger configures the shared logger. Logs always go to stderr so they never
// interleave with report output on stdout.
func InitLogger(level logrus.Level) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := get()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// GetLogger returns the shared logger, creating it with Info level on first use.
func GetLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return get()
}

func get() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
