package fields

import (
	"fmt"
	"strings"
)

// CanonicalBranchingLogic renders the only display condition recognised for
// association: the field is shown when choice key of fieldName is checked.
func CanonicalBranchingLogic(fieldName, key string) string {
	return fmt.Sprintf(`[%s(%s)]="1"`, fieldName, key)
}

func normalizeLogic(logic string) string {
	return strings.TrimSpace(logic)
}

// Associate recomputes the associated fields of every entry in all. A field G
// is associated with F when G's branching logic equals the canonical
// condition for one of F's declared choice keys. Anything else, including
// compound boolean logic, associates with nothing. The result depends only
// on the definitions, so calling Associate again yields the same wiring.
func Associate(all []*Field) {
	for _, owner := range all {
		if owner == nil {
			continue
		}
		owner.associated = resolveAssociated(owner, all)
	}
}

func resolveAssociated(owner *Field, all []*Field) []*Field {
	if owner.choices.Len() == 0 {
		return nil
	}
	conditions := make(map[string]struct{}, owner.choices.Len())
	for _, key := range owner.choices.Keys() {
		conditions[CanonicalBranchingLogic(owner.def.Name, key)] = struct{}{}
	}

	var out []*Field
	for _, candidate := range all {
		if candidate == nil {
			continue
		}
		logic := normalizeLogic(candidate.def.BranchingLogic)
		if logic == "" {
			continue
		}
		if _, ok := conditions[logic]; ok {
			out = append(out, candidate)
		}
	}
	return out
}
