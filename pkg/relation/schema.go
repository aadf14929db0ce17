package relation

import "fmt"

// Attribute defines a named, typed position in a schema. Names are
// case-sensitive.
type Attribute struct {
	Name string
	Type Type
}

// Schema is the ordered attribute list of a relation. It is immutable
// after construction; tuples validate positionally against it.
type Schema struct {
	Attrs []Attribute
}

// NewSchema creates a schema, rejecting duplicate attribute names.
func NewSchema(attrs []Attribute) (*Schema, error) {
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return &Schema{Attrs: attrs}, nil
}

// Arity returns the number of attributes.
func (s *Schema) Arity() int {
	return len(s.Attrs)
}

// IndexOf returns the position of the named attribute, or -1 if absent.
func (s *Schema) IndexOf(name string) int {
	for i, a := range s.Attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the attribute names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Attrs))
	for i, a := range s.Attrs {
		names[i] = a.Name
	}
	return names
}

// Clone returns a schema sharing nothing with the receiver.
func (s *Schema) Clone() *Schema {
	attrs := make([]Attribute, len(s.Attrs))
	copy(attrs, s.Attrs)
	return &Schema{Attrs: attrs}
}

// Validate checks that a tuple matches the schema: arity first, then the
// type at every position.
func (s *Schema) Validate(t Tuple) error {
	if len(t) != len(s.Attrs) {
		return fmt.Errorf("%w: expected %d attributes, got %d", ErrSchemaViolation, len(s.Attrs), len(t))
	}
	for i, a := range s.Attrs {
		if t[i].Type != a.Type {
			return fmt.Errorf("%w: attribute %q expects %s, got %s", ErrSchemaViolation, a.Name, a.Type, t[i].Type)
		}
	}
	return nil
}
