package config

import (
	"go.uber.org/zap"

	"github.com/linesmerrill/fir-document-api/logging"
)

// setLogger builds the logger for the running environment
func setLogger(environment string) (*zap.Logger, error) {
	return logging.New(environment)
}
