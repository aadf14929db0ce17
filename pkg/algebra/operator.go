// Package algebra implements operator trees over relations: scans at the
// leaves, projection and selection above them, with the two-input join and
// union shapes reserved.
//
// Evaluation is post-order and never mutates an input. Every result is a
// fresh relation named "derived" whose storage is disjoint from all inputs,
// so results compose: a derived relation feeds the next operator like any
// base relation.
package algebra

import (
	"errors"
	"fmt"

	"github.com/bwaklog/codd/pkg/relation"
)

// Common errors for operator evaluation
var (
	ErrNotImplemented     = errors.New("algebra: operator not implemented")
	ErrMalformedPredicate = errors.New("algebra: malformed predicate")
	ErrAbsentRelation     = errors.New("algebra: scan of absent relation")
)

// DerivedName is the name carried by every evaluation result.
const DerivedName = "derived"

// Input is one operand of an operator: a Scan of an existing relation, or
// a nested Operator whose result feeds this one. The set of
// implementations is fixed by the unexported method.
type Input interface {
	resolve() (*relation.Relation, error)
}

// Scan reads an existing relation as an operator input. The relation is
// borrowed: evaluation reads it through copying accessors and never
// modifies it.
type Scan struct {
	Rel *relation.Relation
}

func (s Scan) resolve() (*relation.Relation, error) {
	if s.Rel == nil {
		return nil, ErrAbsentRelation
	}
	return s.Rel, nil
}

// Operator is one node of an operator tree.
type Operator interface {
	Input
	Evaluate() (*relation.Relation, error)
}

// BinaryKind enumerates the reserved two-input operators.
type BinaryKind int

const (
	KindJoin BinaryKind = iota
	KindUnion
)

func (k BinaryKind) String() string {
	switch k {
	case KindJoin:
		return "JOIN"
	case KindUnion:
		return "UNION"
	default:
		return fmt.Sprintf("BINARY(%d)", int(k))
	}
}

// Binary is the reserved two-input node. The tree shape is part of the
// contract now; the evaluation rules are not, so Evaluate always fails
// with ErrNotImplemented.
type Binary struct {
	Kind  BinaryKind
	Left  Input
	Right Input
}

func (b *Binary) resolve() (*relation.Relation, error) {
	return b.Evaluate()
}

// Evaluate fails: no binary operator is evaluable yet.
func (b *Binary) Evaluate() (*relation.Relation, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotImplemented, b.Kind)
}
