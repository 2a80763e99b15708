// Package parser defines the boundary contract a concrete IDL parser
// must satisfy; the core pipeline treats every
// parser as an external collaborator and ships no parser of its own
// (internal/textidl is a reference implementation used by tests and
// the CLI, not a contract requirement).
package parser

import "github.com/nswarm/apyxl/model"

// Config is the parser configuration schema shared across implementations.
type Config struct {
	UserTypes          []model.UserType `json:"user_types"`
	EnableParsePrivate bool             `json:"enable_parse_private"`
}

// Merger is the subset of *builder.Builder a Parser needs: the
// ability to graft a fully-parsed chunk's sub-tree in. Expressed as an
// interface (rather than importing package builder directly) so a
// Parser implementation can be tested against a fake without pulling
// in the validator.
type Merger interface {
	Merge(namespace *model.Namespace, chunkTag string)
}

// Parser accepts one raw source chunk and, on success, merges its
// parsed sub-tree into b under chunkTag. On failure it returns a
// parser-specific error (conventionally *apyxlerr.ParseError) and must
// not have called b.Merge for this chunk at all — a parser builds its
// complete sub-tree first and only merges once parsing the whole
// chunk has succeeded, so a failed chunk contributes nothing.
type Parser interface {
	Parse(source []byte, chunkTag string, cfg Config, b Merger) error
}
