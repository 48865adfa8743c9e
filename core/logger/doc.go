// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry,
// so all logs related to one request can be correlated. WithTrack does the same for
// the per-track report pipelines, which run concurrently and would otherwise interleave.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Report started")
//
//	l := logger.WithTrack(log, "AOI_sacramento", "42")
//	l.Warn("Skipping malformed date pair", zap.String("token", token))
package logger
