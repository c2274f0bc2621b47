// Package http implements the REST transport of the identity service.
//
// It wires chi routes to the identity operations and carries the
// cross-cutting middleware: request tracing, access logging, compression and
// the bearer-token guard in its mandatory and optional modes. Service errors
// are translated to status codes in one place, see statusFromError.
package http
