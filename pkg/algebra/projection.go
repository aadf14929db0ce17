package algebra

import (
	"fmt"

	"github.com/bwaklog/codd/pkg/relation"
)

// RowID is the synthetic primary key attribute minted for every projection
// result.
const RowID = "rowid"

// Projection keeps the named attributes of its input, in the order given,
// and drops duplicate result tuples. A nil or empty Attrs keeps every
// attribute in schema order.
//
// The result prepends a synthetic INT attribute "rowid" as its primary
// key, numbered densely from 0 in input order. Duplicate elimination
// compares the projected values only; rowid never participates. A selected
// attribute named "rowid", or one selected twice, collides in the result
// schema and fails before any tuple is read.
type Projection struct {
	Attrs []string
	Input Input
}

func (p *Projection) resolve() (*relation.Relation, error) {
	return p.Evaluate()
}

// Evaluate materializes the projection as a fresh derived relation.
func (p *Projection) Evaluate() (*relation.Relation, error) {
	in, err := p.Input.resolve()
	if err != nil {
		return nil, err
	}
	schema := in.Schema()

	attrs := p.Attrs
	if len(attrs) == 0 {
		attrs = schema.Names()
	}

	// Resolve every selected name to its position before any row work
	positions := make([]int, len(attrs))
	for i, name := range attrs {
		idx := schema.IndexOf(name)
		if idx == -1 {
			return nil, fmt.Errorf("%w: %q in relation %q", relation.ErrUnknownAttribute, name, in.Name())
		}
		positions[i] = idx
	}

	outAttrs := make([]relation.Attribute, 0, len(positions)+1)
	outAttrs = append(outAttrs, relation.Attribute{Name: RowID, Type: relation.TypeInt})
	for _, idx := range positions {
		outAttrs = append(outAttrs, schema.Attrs[idx])
	}
	outSchema, err := relation.NewSchema(outAttrs)
	if err != nil {
		return nil, err
	}

	out, err := relation.NewRelation(DerivedName, outSchema, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	nextID := int64(0)
	for _, tp := range in.Tuples() {
		projected := make(relation.Tuple, 0, len(positions)+1)
		projected = append(projected, relation.Value{}) // rowid, assigned below
		for _, idx := range positions {
			projected = append(projected, tp[idx])
		}

		fp := relation.Fingerprint(projected[1:])
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}

		projected[0] = relation.NewInt(nextID)
		nextID++
		if err := out.InsertRow(projected); err != nil {
			return nil, err
		}
	}

	return out, nil
}
