package ral

import (
	"fmt"

	"github.com/bwaklog/codd/pkg/algebra"
	"github.com/bwaklog/codd/pkg/catalog"
	"github.com/bwaklog/codd/pkg/relation"
)

// Executor runs RAL statements against a catalog. Query statements compile
// to operator trees; evaluation results are materialized into the Result
// but not registered in the catalog.
type Executor struct {
	cat *catalog.Catalog
}

// NewExecutor creates an executor over the given catalog.
func NewExecutor(cat *catalog.Catalog) *Executor {
	return &Executor{cat: cat}
}

// Result represents the result of executing a statement. Message-only
// results come from DDL and inserts; query results carry Columns and Rows
// in the derived relation's primary-key order.
type Result struct {
	Message string
	Columns []string
	Rows    [][]relation.Value
}

// Execute runs a single statement and returns its result.
func (e *Executor) Execute(stmt Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *CreateRelationStmt:
		return e.executeCreate(s)
	case *DropRelationStmt:
		return e.executeDrop(s)
	case *InsertStmt:
		return e.executeInsert(s)
	case *ProjectStmt:
		return e.executeQuery(s)
	case *RestrictStmt:
		return e.executeQuery(s)
	case *ShowRelationsStmt:
		return e.executeShowRelations()
	case *DescribeStmt:
		return e.executeDescribe(s)
	default:
		return nil, fmt.Errorf("unsupported statement type %T", stmt)
	}
}

func (e *Executor) executeCreate(s *CreateRelationStmt) (*Result, error) {
	attrs := make([]relation.Attribute, len(s.Attrs))
	pkIndex := -1
	for i, a := range s.Attrs {
		attrs[i] = relation.Attribute{Name: a.Name, Type: a.Type}
		if a.PrimaryKey {
			if pkIndex != -1 {
				return nil, fmt.Errorf("relation %q declares more than one primary key", s.Name)
			}
			pkIndex = i
		}
	}
	if pkIndex == -1 {
		return nil, fmt.Errorf("relation %q declares no primary key", s.Name)
	}

	schema, err := relation.NewSchema(attrs)
	if err != nil {
		return nil, err
	}
	rel, err := relation.NewRelation(s.Name, schema, pkIndex)
	if err != nil {
		return nil, err
	}
	if err := e.cat.Create(rel); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("CREATE RELATION %s", s.Name)}, nil
}

func (e *Executor) executeDrop(s *DropRelationStmt) (*Result, error) {
	if err := e.cat.Drop(s.Name); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("DROP RELATION %s", s.Name)}, nil
}

func (e *Executor) executeInsert(s *InsertStmt) (*Result, error) {
	rel, err := e.cat.Get(s.Relation)
	if err != nil {
		return nil, err
	}
	rows := make([]relation.Tuple, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = relation.Tuple(r)
	}
	if err := rel.InsertRows(rows); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("INSERT %d", len(rows))}, nil
}

func (e *Executor) executeQuery(stmt InputExpr) (*Result, error) {
	op, err := e.compile(stmt)
	if err != nil {
		return nil, err
	}
	out, err := op.Evaluate()
	if err != nil {
		return nil, err
	}

	tuples := out.Tuples()
	rows := make([][]relation.Value, len(tuples))
	for i, tp := range tuples {
		rows[i] = tp
	}
	return &Result{Columns: out.Schema().Names(), Rows: rows}, nil
}

// compile turns an input expression into an operator tree. Relation names
// resolve through the catalog; nested queries recurse.
func (e *Executor) compile(expr InputExpr) (algebra.Operator, error) {
	input, err := e.compileInput(expr)
	if err != nil {
		return nil, err
	}
	op, ok := input.(algebra.Operator)
	if !ok {
		return nil, fmt.Errorf("expression %T is not a query", expr)
	}
	return op, nil
}

func (e *Executor) compileInput(expr InputExpr) (algebra.Input, error) {
	switch in := expr.(type) {
	case *RelationRef:
		rel, err := e.cat.Get(in.Name)
		if err != nil {
			return nil, err
		}
		return algebra.Scan{Rel: rel}, nil
	case *ProjectStmt:
		child, err := e.compileInput(in.Input)
		if err != nil {
			return nil, err
		}
		attrs := in.Attrs
		if in.Star {
			attrs = nil
		}
		return &algebra.Projection{Attrs: attrs, Input: child}, nil
	case *RestrictStmt:
		child, err := e.compileInput(in.Input)
		if err != nil {
			return nil, err
		}
		pred, err := compilePredicate(in.Pred)
		if err != nil {
			return nil, err
		}
		return &algebra.Selection{Pred: pred, Input: child}, nil
	default:
		return nil, fmt.Errorf("unsupported input expression type %T", expr)
	}
}

func compilePredicate(p *PredicateExpr) (algebra.Predicate, error) {
	var pred algebra.Predicate
	if p == nil {
		return pred, nil
	}
	for _, c := range p.Conds {
		cmp, err := comparatorFor(c.Op)
		if err != nil {
			return pred, err
		}
		pred.Conds = append(pred.Conds, algebra.Condition{Attr: c.Attr, Cmp: cmp, Value: c.Value})
	}
	for _, conn := range p.Conns {
		if conn == TOKEN_AND {
			pred.Conns = append(pred.Conns, algebra.ConnAnd)
		} else {
			pred.Conns = append(pred.Conns, algebra.ConnOr)
		}
	}
	return pred, nil
}

func comparatorFor(op TokenType) (algebra.Comparator, error) {
	switch op {
	case TOKEN_EQ:
		return algebra.CmpEq, nil
	case TOKEN_NE:
		return algebra.CmpNe, nil
	case TOKEN_LT:
		return algebra.CmpLt, nil
	case TOKEN_LE:
		return algebra.CmpLe, nil
	case TOKEN_GT:
		return algebra.CmpGt, nil
	case TOKEN_GE:
		return algebra.CmpGe, nil
	default:
		return 0, fmt.Errorf("token %v is not a comparison operator", op)
	}
}

func (e *Executor) executeShowRelations() (*Result, error) {
	names := e.cat.List()
	rows := make([][]relation.Value, 0, len(names))
	for _, name := range names {
		rel, err := e.cat.Get(name)
		if err != nil {
			// Dropped between List and Get; skip
			continue
		}
		rows = append(rows, []relation.Value{
			relation.NewStr(name),
			relation.NewInt(int64(rel.Cardinality())),
		})
	}
	return &Result{Columns: []string{"relation", "tuples"}, Rows: rows}, nil
}

func (e *Executor) executeDescribe(s *DescribeStmt) (*Result, error) {
	rel, err := e.cat.Get(s.Name)
	if err != nil {
		return nil, err
	}
	schema := rel.Schema()
	rows := make([][]relation.Value, schema.Arity())
	for i, a := range schema.Attrs {
		key := ""
		if i == rel.PrimaryKeyIndex() {
			key = "PRIMARY KEY"
		}
		rows[i] = []relation.Value{
			relation.NewStr(a.Name),
			relation.NewStr(a.Type.String()),
			relation.NewStr(key),
		}
	}
	return &Result{Columns: []string{"attribute", "type", "key"}, Rows: rows}, nil
}
