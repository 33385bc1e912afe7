// Package server exposes a word cloud over HTTP.
//
// Routes:
//
//	GET    /api/words                 stored entries as [[label, weight], ...]
//	PUT    /api/words                 replace entries (same JSON shape)
//	DELETE /api/words                 delete stored entries, back to defaults
//	POST   /api/words/{label}/add     increment a weight
//	POST   /api/words/{label}/remove  decrement a weight
//	POST   /api/reset                 set every weight to the baseline
//	GET    /api/cloud                 current layout as JSON
//	GET    /api/cloud.svg             current animation frame as SVG
//	GET    /healthz                   liveness and loop counters
//
// Errors are JSON objects {"code": ..., "message": ...} with the status taken
// from [errors.HTTPStatus]. A failed durable write does not fail a command: the
// response carries a "warning" field instead.
//
// [errors.HTTPStatus]: github.com/matzehuels/wordcloud/pkg/errors.HTTPStatus
package server
