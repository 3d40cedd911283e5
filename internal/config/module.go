package config

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module exposes configuration loader for fx graphs.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logSummary),
)

// logSummary records the effective settings without secrets.
func logSummary(cfg *Config, logger *zap.Logger) {
	logger.Named("config").Info("configuration loaded",
		zap.String("addr", cfg.RunAddress),
		zap.String("storage", cfg.StorageDriver),
		zap.String("auth", cfg.AuthStrategy),
		zap.Bool("sms", cfg.SMSFunctionURL != ""),
		zap.Duration("counts_interval", cfg.CountsRefreshInterval),
		zap.Int("counts_workers", cfg.CountsWorkers),
	)
}
