// Package middleware provides HTTP middleware for the Skirmish API.
//
// # Available Middleware
//
//   - RequestID: reads or generates X-Request-ID and stores it in the context
//   - Logger: one structured slog line per request
//   - Recovery: converts panics into a 500 problem document
//   - Compress: gzip for JSON responses
//   - CORS / OpenCORS: console origins only, or any origin for device routes
//   - Metrics.Instrument: Prometheus request counters and latency histograms
//
// Compose them with Chain, outermost first:
//
//	h := middleware.Chain(mux, middleware.RequestID, middleware.Logger, middleware.Recovery)
package middleware
