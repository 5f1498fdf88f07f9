package logging

import "go.uber.org/zap"

// New creates a zap logger for the given environment. production logs JSON
// at info, development logs human readable output at debug, anything else
// gets the example logger used in tests and local runs.
func New(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
