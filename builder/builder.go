// Package builder implements the merge/build stage: it grows a single
// root namespace by repeatedly merging per-chunk sub-trees, preserving
// chunk provenance, then hands the merged tree to the validator and
// returns the finished Model.
//
// Merge is an incremental, single-chunk call so callers can stream
// chunks as their parser produces them rather than needing every
// source file up front.
package builder

import (
	"context"
	"io"
	"strings"

	"github.com/nswarm/apyxl/internal/logx"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/validate"
)

// Builder grows one root namespace across repeated Merge calls. It is
// not safe for concurrent use — scopes the core pipeline as
// single-threaded cooperative.
type Builder struct {
	root *model.Namespace
}

// New returns an empty Builder, ready to receive chunks.
func New() *Builder {
	return &Builder{root: model.NewNamespace("")}
}

// Merge grafts namespace (a chunk's parsed sub-tree, rooted at the
// anonymous root) into the Builder's accumulated tree, tagging every
// non-namespace child it merges with chunkTag. The merge is a deep
// union: when both sides already contain a namespace with the same
// name at the same path, their children are concatenated in order
// (existing children first, then the new chunk's). Duplicate
// non-namespace children are not deduplicated here — they are
// surfaced by the validator's Duplicates pass so users see every
// conflicting definition.
func (b *Builder) Merge(namespace *model.Namespace, chunkTag string) {
	mergeInto(b.root, namespace, chunkTag)
}

func mergeInto(dst *model.Namespace, src *model.Namespace, chunkTag string) {
	for _, child := range src.Children() {
		switch c := child.(type) {
		case *model.Namespace:
			target, ok := dst.FindNamespace(c.Name())
			if !ok {
				target = model.NewNamespace(c.Name())
				dst.AddChild(target)
			}
			mergeInto(target, c, chunkTag)
		default:
			child.Attributes().SetChunkTag(chunkTag)
			dst.AddChild(child)
		}
	}
}

// Build finalizes the accumulated tree: it runs the validator
// (package validate) and, on success, returns the completed Model. On
// failure it returns the accumulated validation errors, in
// deterministic order, and a nil Model. If cfg.PreValidationPrint is
// set, a debug dump of the tree is written via the logger attached to
// ctx before validation begins.
func Build(ctx context.Context, b *Builder, cfg Config) (*model.Model, error) {
	if cfg.PreValidationPrint {
		logx.From(ctx).Logf(logx.Info, "pre-validation namespace tree:\n%s", b.root.Dump())
	}
	m := model.NewModel(b.root)
	if err := validate.Validate(m, validate.Config{UserTypes: cfg.UserTypes}); err != nil {
		return nil, err
	}
	return m, nil
}

// DumpTo writes a PreValidationPrint-style dump of the accumulated tree
// to w without going through a context logger.
func DumpTo(w io.Writer, b *Builder) error {
	_, err := io.Copy(w, strings.NewReader(b.root.Dump()))
	return err
}
