package account

import (
	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the process logger. Unknown levels fall back to info.
func SetupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// logf adapts logrus to the Logf interface of the go-pkgz libraries.
type logf func(format string, args ...interface{})

func (f logf) Logf(format string, args ...interface{}) {
	f(format, args...)
}
