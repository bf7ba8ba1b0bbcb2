package form

import (
	"errors"
	"fmt"
)

// ErrFieldNotFound reports a lookup for a name that has no definition in the
// dictionary. It is distinct from a field that exists but has no answer,
// which decodes to an absent Value.
var ErrFieldNotFound = errors.New("form: field not found")

// FieldNotFoundError carries the requested name and matches ErrFieldNotFound
// under errors.Is.
type FieldNotFoundError struct {
	Name string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("form: field %q not found", e.Name)
}

func (e *FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}
