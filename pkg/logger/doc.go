// Package logger provides a small factory around log/slog for the voicegate
// service.
//
// The factory produces *slog.Logger instances configured through functional
// options or an environment-backed Config. Two output formats are supported:
// JSON for production log aggregation and text for local development.
//
// # Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithAttr(slog.String("service", "voicegate")),
//	)
//
// Or from environment configuration:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
package logger
