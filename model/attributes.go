package model

// UserAttributeKind tags which of the three attribute shapes a
// UserAttribute carries.
type UserAttributeKind int

const (
	// AttrFlag is "name_only": presence alone is the signal.
	AttrFlag UserAttributeKind = iota
	// AttrPositional is "name(list...)".
	AttrPositional
	// AttrKeyValue is "name(key=value, ...)".
	AttrKeyValue
)

// UserAttribute is one free-form annotation carried on an entity, in
// one of three source shapes: a bare flag, a positional token list, or
// key-value pairs. Parsers populate these; the core pipeline never
// interprets them, only carries them through to views verbatim
// (modulo AttributesTransform).
type UserAttribute struct {
	Name string
	Kind UserAttributeKind

	Tokens   []string          // AttrPositional
	KeyValue map[string]string // AttrKeyValue
}

// Attributes is the metadata record every entity carries. EntityId and
// ChunkTag start unset and are filled in by the validator's Stamping
// pass and the builder's merge respectively.
type Attributes struct {
	UserAttributes []UserAttribute
	Comments       []string

	hasEntityId bool
	entityId    EntityId

	hasChunkTag bool
	chunkTag    string
}

// EntityId returns the entity's absolute identifier and true, or the
// zero identifier and false if the Stamping validation pass has not
// run yet (e.g. on a pre-build chunk).
func (a Attributes) EntityId() (EntityId, bool) { return a.entityId, a.hasEntityId }

// SetEntityId is called exactly once per entity, by the validator's
// Stamping pass.
func (a *Attributes) SetEntityId(id EntityId) {
	a.entityId = id
	a.hasEntityId = true
}

// ChunkTag returns the tag of the chunk that contributed this entity
// to the model, and true, or ("", false) for namespaces, which by
// design have no single chunk origin.
func (a Attributes) ChunkTag() (string, bool) { return a.chunkTag, a.hasChunkTag }

// SetChunkTag is called by the builder when it merges a non-namespace
// child.
func (a *Attributes) SetChunkTag(tag string) {
	a.chunkTag = tag
	a.hasChunkTag = true
}

// GetUserAttribute returns the first user attribute with the given
// name, or nil if none is present.
func (a Attributes) GetUserAttribute(name string) *UserAttribute {
	for i := range a.UserAttributes {
		if a.UserAttributes[i].Name == name {
			return &a.UserAttributes[i]
		}
	}
	return nil
}
