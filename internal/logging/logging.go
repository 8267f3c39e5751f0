// Package logging builds the application's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger when dev is true and a JSON production
// logger otherwise.
func New(dev bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Must is New for entry points that cannot run without a logger.
func Must(dev bool) *zap.Logger {
	logger, err := New(dev)
	if err != nil {
		panic(err)
	}
	return logger
}
