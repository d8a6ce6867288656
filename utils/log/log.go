package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "chirprack_api"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Send log to stderr, json formatted in prod for log collection, plain
	// text otherwise for better readability.
	logger.SetOutput(os.Stderr)
	isProd := os.Getenv("CHIRPRACK_ENV") == "prod"
	if isProd {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": serviceName, "is_development": !isProd},
	)
}
