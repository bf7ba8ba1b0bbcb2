package fields

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// FallbackMessage formats the diagnostic emitted when a type name has no
// registered variant.
func FallbackMessage(typeName string) string {
	return fmt.Sprintf("Unimplemented field type: %s. Falling back to Text.", typeName)
}

// Registry maps field type names to variants. Lookups normalise the name so
// "radio_buttons", "RadioButtons" and "radio-buttons" resolve alike.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

// NewRegistry returns a registry with the built-in type names registered.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry returns a registry that resolves nothing; every lookup
// falls back to Text.
func NewEmptyRegistry() *Registry {
	return &Registry{variants: make(map[string]Variant)}
}

// Register binds a type name to a variant. Empty names, invalid variants and
// names that normalise onto an existing entry are rejected.
func (r *Registry) Register(name string, variant Variant) error {
	key := NormalizeTypeName(name)
	if key == "" {
		return fmt.Errorf("fields: type name is required")
	}
	if !variant.Valid() {
		return fmt.Errorf("fields: invalid variant %d for %q", int(variant), name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.variants[key]; exists {
		return fmt.Errorf("fields: type %q already registered as %s", name, existing)
	}
	r.variants[key] = variant
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, variant Variant) {
	if err := r.Register(name, variant); err != nil {
		panic(err)
	}
}

// Lookup reports the variant registered for typeName.
func (r *Registry) Lookup(typeName string) (Variant, bool) {
	if r == nil {
		return VariantText, false
	}
	key := NormalizeTypeName(typeName)

	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, ok := r.variants[key]
	if !ok {
		return VariantText, false
	}
	return variant, true
}

// Resolve returns the variant for typeName, or VariantText for unknown names.
// Use Lookup when the caller needs to know a fallback happened.
func (r *Registry) Resolve(typeName string) Variant {
	variant, _ := r.Lookup(typeName)
	return variant
}

// Has reports whether typeName resolves without falling back.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.Lookup(typeName)
	return ok
}

// List returns the registered (normalised) type names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeTypeName lower-cases the name and drops everything that is not a
// letter or digit.
func NormalizeTypeName(name string) string {
	var out strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(unicode.ToLower(r))
		}
	}
	return out.String()
}

func (r *Registry) registerBuiltins() {
	for _, variant := range Variants() {
		r.MustRegister(variant.String(), variant)
	}
	// platform type names that differ from the variant names
	r.MustRegister("radio", VariantRadioButtons)
	r.MustRegister("checkbox", VariantCheckboxesWithOther)
}
