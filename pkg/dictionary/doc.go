// Package dictionary models the per-project data dictionary exported by the
// data-capture platform: one FieldDefinition per instrument field, kept in
// declaration order and unique by field name. Definitions are immutable once
// a Dictionary is built. Raw metadata exports (ordered lists of string maps)
// are ingested with FromAttributes or through a Loader, which accepts JSON or
// YAML documents.
package dictionary
