// Package generator defines the boundary contract a concrete code
// generator must satisfy; the core pipeline treats
// every generator as an external collaborator. internal/gendebug and
// internal/genjson are reference implementations used by tests and the
// CLI, not contract requirements.
package generator

import (
	"io"

	"github.com/nswarm/apyxl/view"
)

// Sink is the output-side collaborator a Generator writes through. A
// generator decides its own file/chunk boundaries by calling
// WriteChunk once per output unit; the sink owns buffering, path
// resolution under an output root, and indentation concerns, all of
// which are explicitly out of the core's scope.
type Sink interface {
	// WriteChunk opens (or returns) the writer for the named output
	// unit, e.g. a relative file path. Callers close the returned
	// writer when done with that chunk.
	WriteChunk(path string) (io.WriteCloser, error)
}

// Generator iterates an immutable View and writes declarations to a
// Sink.
type Generator interface {
	Generate(v view.View, sink Sink) error
}
