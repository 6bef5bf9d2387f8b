package cmd

import (
	"log"

	"github.com/dendrascience/valheim-save-tools/save"
	"github.com/dendrascience/valheim-save-tools/world"
	"github.com/dendrascience/valheim-save-tools/zpack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger used by every subcommand. Only
// warnings are shown unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// setupLogging installs the console logger into the library packages.
func setupLogging(verbose bool) *zap.Logger {
	l, err := newLogger(verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	zpack.SetLogger(l.Named("zpack"))
	save.SetLogger(l.Named("save"))
	world.SetLogger(l.Named("world"))
	return l
}
