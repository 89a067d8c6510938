// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvfst/capi"
	"github.com/katalvlaran/lvfst/script"
	"github.com/katalvlaran/lvfst/weight"
)

// NewLogger builds a zap logger at l.Level, with the development or
// production preset.
func NewLogger(l Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %v", ErrInvalid, err)
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// InstallLogger routes the diagnostics of weight, script and capi to lg.
func InstallLogger(lg *zap.Logger) {
	weight.SetLogger(lg)
	script.SetLogger(lg.Named("script"))
	capi.SetLogger(lg.Named("capi"))
}
