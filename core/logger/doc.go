// Package logger provides structured logging for the waiver service.
//
// It wraps go.uber.org/zap with a small Config (level + format) so the CLI
// can run with colored console output while the server logs JSON. The
// WithRayID helper attaches the per-request ray_id from the Fiber context
// so log lines can be correlated across a single request.
package logger
