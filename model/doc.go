// Package model holds the typed, tree-shaped representation of an API
// surface: namespaces, data types, remote procedures, enums, and type
// aliases, addressed by fully-qualified entity identifiers and carrying
// free-form attribute metadata. Cross-links between entities (a field's
// type referencing a Dto elsewhere in the tree) are represented as
// EntityId paths rather than pointers, so the tree stays a single owned
// structure with no reference cycles to manage.
package model
