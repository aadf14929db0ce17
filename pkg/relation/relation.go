package relation

import (
	"errors"
	"fmt"

	"github.com/bwaklog/codd/pkg/btree"
)

// Tuple is one row of a relation, positionally aligned with its schema.
type Tuple []Value

// Clone returns a copy sharing no storage with the receiver.
func (t Tuple) Clone() Tuple {
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

// Relation is a named, schema-bound tuple container ordered by its primary
// key. Failed inserts leave the relation exactly as it was; readers get
// copies, never aliases into storage.
type Relation struct {
	name    string
	schema  *Schema
	pkIndex int
	tree    *btree.BTree
}

// NewRelation creates an empty relation whose primary key is the attribute
// at pkIndex.
func NewRelation(name string, schema *Schema, pkIndex int) (*Relation, error) {
	if pkIndex < 0 || pkIndex >= schema.Arity() {
		return nil, fmt.Errorf("%w: index %d, arity %d", ErrInvalidKeyIndex, pkIndex, schema.Arity())
	}
	tree, err := btree.New(btree.Config{Unique: true})
	if err != nil {
		return nil, err
	}
	return &Relation{
		name:    name,
		schema:  schema,
		pkIndex: pkIndex,
		tree:    tree,
	}, nil
}

// Name returns the relation name.
func (r *Relation) Name() string {
	return r.name
}

// Schema returns the relation's schema. Treat it as read-only.
func (r *Relation) Schema() *Schema {
	return r.schema
}

// PrimaryKeyIndex returns the position of the primary key attribute.
func (r *Relation) PrimaryKeyIndex() int {
	return r.pkIndex
}

// PrimaryKey returns the primary key attribute.
func (r *Relation) PrimaryKey() Attribute {
	return r.schema.Attrs[r.pkIndex]
}

// Cardinality returns the number of stored tuples.
func (r *Relation) Cardinality() int {
	return r.tree.Len()
}

// InsertRow validates a tuple against the schema and stores it.
func (r *Relation) InsertRow(t Tuple) error {
	if err := r.schema.Validate(t); err != nil {
		return err
	}
	if err := r.tree.Insert(EncodeKey(t[r.pkIndex]), t.Clone()); err != nil {
		if errors.Is(err, btree.ErrDuplicateKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, t[r.pkIndex])
		}
		return err
	}
	return nil
}

// InsertRows stores a batch of tuples all-or-nothing: every tuple is
// checked against the schema, against keys already stored, and against the
// rest of the batch before the first one lands. On failure the relation is
// unchanged.
func (r *Relation) InsertRows(ts []Tuple) error {
	for _, t := range ts {
		if err := r.schema.Validate(t); err != nil {
			return err
		}
	}
	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		pk := t[r.pkIndex]
		k := string(EncodeKey(pk))
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s repeats within batch", ErrDuplicateKey, pk)
		}
		seen[k] = struct{}{}
		if _, ok := r.Lookup(pk); ok {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pk)
		}
	}
	for _, t := range ts {
		if err := r.tree.Insert(EncodeKey(t[r.pkIndex]), t.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns a copy of the tuple with the given primary key.
func (r *Relation) Lookup(pk Value) (Tuple, bool) {
	v, err := r.tree.Get(EncodeKey(pk))
	if err != nil {
		return nil, false
	}
	return v.(Tuple).Clone(), true
}

// Tuples returns copies of all stored tuples in primary-key order.
func (r *Relation) Tuples() []Tuple {
	entries := r.tree.Scan(nil, nil)
	out := make([]Tuple, len(entries))
	for i, e := range entries {
		out[i] = e.Value.(Tuple).Clone()
	}
	return out
}
