// Package fields implements the field-type system: a closed set of decode
// Variants, a Registry mapping platform type names onto them (unknown names
// fall back to Text), choice-list parsing, and Field, which decodes one
// answer out of a raw record.
//
// Composite checkbox variants combine several fields into one answer. The
// companion fields are found structurally: a field whose branching logic is
// exactly [owner(key)]="1" belongs to the owner's choice key. See Associate.
package fields
