package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New build the process-wide zap logger. production config, ISO8601
// timestamps, stderr.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log, nil
}
