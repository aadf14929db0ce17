package ral

import "github.com/bwaklog/codd/pkg/relation"

// AST node types for RAL statements

// Statement is the interface for all RAL statements.
type Statement interface {
	statementNode()
}

// InputExpr is the interface for operator inputs: a relation name or a
// nested query.
type InputExpr interface {
	inputNode()
}

// AttributeDef represents one attribute in CREATE RELATION.
type AttributeDef struct {
	Name       string
	Type       relation.Type
	PrimaryKey bool
}

// CreateRelationStmt represents CREATE RELATION.
type CreateRelationStmt struct {
	Name  string
	Attrs []AttributeDef
}

func (s *CreateRelationStmt) statementNode() {}

// DropRelationStmt represents DROP RELATION.
type DropRelationStmt struct {
	Name string
}

func (s *DropRelationStmt) statementNode() {}

// InsertStmt represents INSERT INTO ... VALUES, one all-or-nothing batch.
type InsertStmt struct {
	Relation string
	Rows     [][]relation.Value
}

func (s *InsertStmt) statementNode() {}

// RelationRef names a cataloged relation as an operator input.
type RelationRef struct {
	Name string
}

func (r *RelationRef) inputNode() {}

// ProjectStmt represents PROJECT. Star and Attrs are mutually exclusive.
// It is both a statement and an input, so queries nest.
type ProjectStmt struct {
	Star  bool
	Attrs []string
	Input InputExpr
}

func (s *ProjectStmt) statementNode() {}
func (s *ProjectStmt) inputNode()     {}

// RestrictStmt represents RESTRICT with an optional WHERE predicate.
type RestrictStmt struct {
	Input InputExpr
	Pred  *PredicateExpr // nil when no WHERE clause
}

func (s *RestrictStmt) statementNode() {}
func (s *RestrictStmt) inputNode()     {}

// ConditionExpr compares an attribute against a literal.
type ConditionExpr struct {
	Attr  string
	Op    TokenType // TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_LE, TOKEN_GT, TOKEN_GE
	Value relation.Value
}

// PredicateExpr is a left-to-right chain of conditions; Conns[i] is the
// TOKEN_AND or TOKEN_OR joining Conds[i] and Conds[i+1].
type PredicateExpr struct {
	Conds []ConditionExpr
	Conns []TokenType
}

// ShowRelationsStmt represents SHOW RELATIONS.
type ShowRelationsStmt struct{}

func (s *ShowRelationsStmt) statementNode() {}

// DescribeStmt represents DESCRIBE name.
type DescribeStmt struct {
	Name string
}

func (s *DescribeStmt) statementNode() {}
