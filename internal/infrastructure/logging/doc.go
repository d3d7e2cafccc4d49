// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Components take a *Logger and derive a named child for their own lines:
//
//	logger := logging.NewDefault()
//	mirrorLog := logger.Named("archive")
//	mirrorLog.Info("archive rewritten", zap.String("project", name))
//
// Tests that do not inspect output use Nop.
package logging
