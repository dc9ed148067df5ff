// Package logging provides the process-wide structured logger.
//
// The playground deliberately swallows some failures (history writes must
// never surface to the user), so those paths log here instead.
package logging

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop().Sugar()

// Init builds the global logger. Debug mode switches to the development
// config (console encoder, Debug level); otherwise the production config
// is used with warnings and up.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l.Sugar()
	return nil
}

// L returns the global sugared logger.
func L() *zap.SugaredLogger {
	return logger
}

// Sync flushes any buffered log entries. Safe to call on exit.
func Sync() {
	_ = logger.Sync()
}
