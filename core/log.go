package core

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logger for the command line tools
func SetupLogging(level log.Level) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(level)
}
