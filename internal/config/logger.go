package config

import (
	"log"

	"go.uber.org/zap"
)

// NewLogger builds the application logger: human-readable development
// output outside prod, JSON production output in prod.  The returned
// sugared logger is passed to every service and job.
func NewLogger(env string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	return logger.Sugar()
}
