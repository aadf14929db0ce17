package algebra

import (
	"errors"
	"testing"

	"github.com/bwaklog/codd/pkg/relation"
)

func selectIDs(t *testing.T, rel *relation.Relation, pred Predicate) []string {
	t.Helper()
	out, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	return column(out.Tuples(), 0)
}

func TestSelectionComparators(t *testing.T) {
	rel := numsRelation(t, 5)

	cases := []struct {
		cmp  Comparator
		want []string
	}{
		{CmpEq, []string{"3"}},
		{CmpNe, []string{"1", "2", "4", "5"}},
		{CmpLt, []string{"1", "2"}},
		{CmpLe, []string{"1", "2", "3"}},
		{CmpGt, []string{"4", "5"}},
		{CmpGe, []string{"3", "4", "5"}},
	}
	for _, c := range cases {
		pred := Predicate{Conds: []Condition{{Attr: "id", Cmp: c.cmp, Value: relation.NewInt(3)}}}
		got := selectIDs(t, rel, pred)
		if !sameStrings(got, c.want) {
			t.Errorf("id %s 3: expected %v, got %v", c.cmp, c.want, got)
		}
	}
}

func TestSelectionStringCompare(t *testing.T) {
	rel := usersRelation(t)

	pred := Predicate{Conds: []Condition{{Attr: "name", Cmp: CmpGe, Value: relation.NewStr("b")}}}
	out, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	tuples := out.Tuples()
	if len(tuples) != 1 {
		t.Fatalf("Expected 1 tuple, got %d", len(tuples))
	}
	if !tuples[0][1].Equal(relation.NewStr("bob")) {
		t.Errorf("Expected bob, got %s", tuples[0][1])
	}
}

func TestSelectionLeftAssociativeChain(t *testing.T) {
	rel := numsRelation(t, 3)

	// id=1 OR id=2 AND id=2 folds as (id=1 OR id=2) AND id=2, so only
	// id 2 survives. Right association would also keep id 1.
	pred := Predicate{
		Conds: []Condition{
			{Attr: "id", Cmp: CmpEq, Value: relation.NewInt(1)},
			{Attr: "id", Cmp: CmpEq, Value: relation.NewInt(2)},
			{Attr: "id", Cmp: CmpEq, Value: relation.NewInt(2)},
		},
		Conns: []Connective{ConnOr, ConnAnd},
	}

	got := selectIDs(t, rel, pred)
	if !sameStrings(got, []string{"2"}) {
		t.Errorf("Expected [2], got %v", got)
	}
}

func TestSelectionAndChain(t *testing.T) {
	rel := numsRelation(t, 10)

	pred := Predicate{
		Conds: []Condition{
			{Attr: "id", Cmp: CmpGt, Value: relation.NewInt(3)},
			{Attr: "id", Cmp: CmpLt, Value: relation.NewInt(7)},
		},
		Conns: []Connective{ConnAnd},
	}

	got := selectIDs(t, rel, pred)
	if !sameStrings(got, []string{"4", "5", "6"}) {
		t.Errorf("Expected [4 5 6], got %v", got)
	}
}

func TestSelectionEmptyPredicate(t *testing.T) {
	rel := usersRelation(t)

	out, err := (&Selection{Input: Scan{Rel: rel}}).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if out.Cardinality() != 2 {
		t.Fatalf("Empty predicate should keep all tuples, got %d", out.Cardinality())
	}

	// Fresh storage even for the identity selection
	err = out.InsertRow(relation.Tuple{relation.NewInt(200), relation.NewStr("carol"), relation.NewStr("111")})
	if err != nil {
		t.Fatalf("Derived relation should accept inserts: %v", err)
	}
	if rel.Cardinality() != 2 {
		t.Error("Insert into derived relation reached the input")
	}
}

func TestSelectionNoMatches(t *testing.T) {
	rel := numsRelation(t, 5)

	pred := Predicate{Conds: []Condition{{Attr: "id", Cmp: CmpGt, Value: relation.NewInt(1000)}}}
	out, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if err != nil {
		t.Fatalf("Empty result should be success, got %v", err)
	}
	if out.Cardinality() != 0 {
		t.Errorf("Expected 0 tuples, got %d", out.Cardinality())
	}
}

func TestSelectionUnknownAttribute(t *testing.T) {
	rel := usersRelation(t)

	pred := Predicate{Conds: []Condition{{Attr: "email", Cmp: CmpEq, Value: relation.NewStr("x")}}}
	_, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if !errors.Is(err, relation.ErrUnknownAttribute) {
		t.Errorf("Expected ErrUnknownAttribute, got %v", err)
	}
}

func TestSelectionTypeMismatch(t *testing.T) {
	rel := usersRelation(t)

	// Comparing the INT id against a STR literal is rejected up front
	pred := Predicate{Conds: []Condition{{Attr: "id", Cmp: CmpEq, Value: relation.NewStr("100")}}}
	_, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if !errors.Is(err, relation.ErrSchemaViolation) {
		t.Errorf("Expected ErrSchemaViolation, got %v", err)
	}
}

func TestSelectionMalformedPredicate(t *testing.T) {
	rel := numsRelation(t, 3)

	pred := Predicate{
		Conds: []Condition{
			{Attr: "id", Cmp: CmpEq, Value: relation.NewInt(1)},
			{Attr: "id", Cmp: CmpEq, Value: relation.NewInt(2)},
		},
		// Missing connective
	}
	_, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if !errors.Is(err, ErrMalformedPredicate) {
		t.Errorf("Expected ErrMalformedPredicate, got %v", err)
	}
}

func TestSelectionKeepsSchemaAndKey(t *testing.T) {
	rel := usersRelation(t)

	pred := Predicate{Conds: []Condition{{Attr: "id", Cmp: CmpGe, Value: relation.NewInt(101)}}}
	out, err := (&Selection{Pred: pred, Input: Scan{Rel: rel}}).Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if out.Name() != DerivedName {
		t.Errorf("Expected name %q, got %q", DerivedName, out.Name())
	}
	if !sameStrings(out.Schema().Names(), rel.Schema().Names()) {
		t.Errorf("Selection changed the schema: %v", out.Schema().Names())
	}
	if out.PrimaryKeyIndex() != rel.PrimaryKeyIndex() {
		t.Errorf("Selection moved the primary key: %d", out.PrimaryKeyIndex())
	}
}

func TestSelectionOverProjection(t *testing.T) {
	rel := usersRelation(t)

	tree := &Selection{
		Pred: Predicate{
			Conds: []Condition{{Attr: "name", Cmp: CmpEq, Value: relation.NewStr("alice")}},
		},
		Input: &Projection{Attrs: []string{"name", "phone"}, Input: Scan{Rel: rel}},
	}

	out, err := tree.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	tuples := out.Tuples()
	if len(tuples) != 1 {
		t.Fatalf("Expected 1 tuple, got %d", len(tuples))
	}
	// alice was minted rowid 1 by the projection; selection keeps it
	if !sameStrings([]string{tuples[0][0].String(), tuples[0][1].String(), tuples[0][2].String()},
		[]string{"1", "alice", "6666666666"}) {
		t.Errorf("Unexpected tuple: %v", tuples[0])
	}
}
