// Package api exposes table generation and parsing over HTTP with a
// small JSON contract: POST /api/generate returns a table report,
// POST /api/parse generates a table and runs an input against it, and
// GET /api/health answers liveness probes.
package api

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsergen.api'
func tracer() tracing.Trace {
	return tracing.Select("parsergen.api")
}
