// Package logging provides a minimal logging interface and adapters for Agora.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the orchestration pipeline, stores and transport use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - AgoraLogger with contextual helpers (component, run, persona)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	platform := agora.New(func(o *agora.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
