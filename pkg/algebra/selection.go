package algebra

import (
	"fmt"

	"github.com/bwaklog/codd/pkg/relation"
)

// Comparator enumerates the comparison operators usable in a condition.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (c Comparator) String() string {
	switch c {
	case CmpEq:
		return "="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	default:
		return "?"
	}
}

// Connective joins two adjacent conditions in a predicate chain.
type Connective int

const (
	ConnAnd Connective = iota
	ConnOr
)

func (c Connective) String() string {
	if c == ConnAnd {
		return "AND"
	}
	return "OR"
}

// Condition compares one attribute of a tuple against a literal.
type Condition struct {
	Attr  string
	Cmp   Comparator
	Value relation.Value
}

func (c Condition) matches(v relation.Value) bool {
	cmp := v.Compare(c.Value)
	switch c.Cmp {
	case CmpEq:
		return cmp == 0
	case CmpNe:
		return cmp != 0
	case CmpLt:
		return cmp < 0
	case CmpLe:
		return cmp <= 0
	case CmpGt:
		return cmp > 0
	case CmpGe:
		return cmp >= 0
	default:
		return false
	}
}

// Predicate is a chain of conditions folded left to right; there is no
// precedence between AND and OR. Conns[i] joins Conds[i] and Conds[i+1],
// so len(Conns) must be len(Conds)-1. An empty predicate matches every
// tuple.
type Predicate struct {
	Conds []Condition
	Conns []Connective
}

// validate resolves condition attributes and checks literal types against
// the schema, before any tuple is examined.
func (p Predicate) validate(schema *relation.Schema, relName string) ([]int, error) {
	if len(p.Conds) == 0 {
		if len(p.Conns) != 0 {
			return nil, fmt.Errorf("%w: %d connectives with no conditions", ErrMalformedPredicate, len(p.Conns))
		}
		return nil, nil
	}
	if len(p.Conns) != len(p.Conds)-1 {
		return nil, fmt.Errorf("%w: %d conditions need %d connectives, have %d",
			ErrMalformedPredicate, len(p.Conds), len(p.Conds)-1, len(p.Conns))
	}

	positions := make([]int, len(p.Conds))
	for i, c := range p.Conds {
		idx := schema.IndexOf(c.Attr)
		if idx == -1 {
			return nil, fmt.Errorf("%w: %q in relation %q", relation.ErrUnknownAttribute, c.Attr, relName)
		}
		if schema.Attrs[idx].Type != c.Value.Type {
			return nil, fmt.Errorf("%w: condition compares %q (%s) against %s",
				relation.ErrSchemaViolation, c.Attr, schema.Attrs[idx].Type, c.Value.Type)
		}
		positions[i] = idx
	}
	return positions, nil
}

func (p Predicate) matches(tp relation.Tuple, positions []int) bool {
	if len(p.Conds) == 0 {
		return true
	}
	result := p.Conds[0].matches(tp[positions[0]])
	for i := 1; i < len(p.Conds); i++ {
		next := p.Conds[i].matches(tp[positions[i]])
		if p.Conns[i-1] == ConnAnd {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result
}

// Selection keeps the tuples matching its predicate. The result keeps the
// input's schema and primary-key position: a subset of unique keys stays
// unique, so no re-keying happens.
type Selection struct {
	Pred  Predicate
	Input Input
}

func (s *Selection) resolve() (*relation.Relation, error) {
	return s.Evaluate()
}

// Evaluate materializes the selection as a fresh derived relation.
func (s *Selection) Evaluate() (*relation.Relation, error) {
	in, err := s.Input.resolve()
	if err != nil {
		return nil, err
	}
	schema := in.Schema()

	positions, err := s.Pred.validate(schema, in.Name())
	if err != nil {
		return nil, err
	}

	out, err := relation.NewRelation(DerivedName, schema.Clone(), in.PrimaryKeyIndex())
	if err != nil {
		return nil, err
	}

	for _, tp := range in.Tuples() {
		if !s.Pred.matches(tp, positions) {
			continue
		}
		if err := out.InsertRow(tp); err != nil {
			return nil, err
		}
	}

	return out, nil
}
