package ral

import (
	"fmt"
	"strconv"

	"github.com/bwaklog/codd/pkg/relation"
)

// Parser parses RAL statements.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser creates a new parser for the input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize cur and peek
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) curTokenIs(t TokenType) bool {
	return p.cur.Type == t
}

func (p *Parser) expect(t TokenType) error {
	if p.curTokenIs(t) {
		p.nextToken()
		return nil
	}
	return fmt.Errorf("expected %v, got %v (%q) at position %d", t, p.cur.Type, p.cur.Literal, p.cur.Pos)
}

// Parse parses a single statement, consuming an optional trailing
// semicolon.
func (p *Parser) Parse() (Statement, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(TOKEN_SEMICOLON) {
		p.nextToken()
	}
	if !p.curTokenIs(TOKEN_EOF) {
		return nil, fmt.Errorf("unexpected trailing input %q at position %d", p.cur.Literal, p.cur.Pos)
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	switch p.cur.Type {
	case TOKEN_CREATE:
		return p.parseCreateRelation()
	case TOKEN_DROP:
		return p.parseDropRelation()
	case TOKEN_INSERT:
		return p.parseInsert()
	case TOKEN_PROJECT:
		return p.parseProject()
	case TOKEN_RESTRICT:
		return p.parseRestrict()
	case TOKEN_SHOW:
		return p.parseShow()
	case TOKEN_DESCRIBE:
		return p.parseDescribe()
	default:
		return nil, fmt.Errorf("unexpected token %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
	}
}

func (p *Parser) parseIdentifier() (string, error) {
	if !p.curTokenIs(TOKEN_IDENT) {
		return "", fmt.Errorf("expected identifier, got %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
	}
	name := p.cur.Literal
	p.nextToken()
	return name, nil
}

// parseCreateRelation parses:
// CREATE RELATION name (attr TYPE [PRIMARY KEY], ...)
func (p *Parser) parseCreateRelation() (Statement, error) {
	p.nextToken() // consume CREATE
	if err := p.expect(TOKEN_RELATION); err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}

	stmt := &CreateRelationStmt{Name: name}
	for {
		attr := AttributeDef{}
		attr.Name, err = p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		switch p.cur.Type {
		case TOKEN_INT_TYPE:
			attr.Type = relation.TypeInt
		case TOKEN_STR_TYPE:
			attr.Type = relation.TypeStr
		default:
			return nil, fmt.Errorf("expected attribute type, got %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
		}
		p.nextToken() // consume type

		if p.curTokenIs(TOKEN_PRIMARY) {
			p.nextToken() // consume PRIMARY
			if err := p.expect(TOKEN_KEY); err != nil {
				return nil, err
			}
			attr.PrimaryKey = true
		}

		stmt.Attrs = append(stmt.Attrs, attr)

		if p.curTokenIs(TOKEN_COMMA) {
			p.nextToken() // consume comma
			continue
		}
		break
	}
	if err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseDropRelation parses DROP RELATION name.
func (p *Parser) parseDropRelation() (Statement, error) {
	p.nextToken() // consume DROP
	if err := p.expect(TOKEN_RELATION); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	return &DropRelationStmt{Name: name}, nil
}

// parseInsert parses:
// INSERT INTO name VALUES (v, ...), (v, ...)
func (p *Parser) parseInsert() (Statement, error) {
	p.nextToken() // consume INSERT
	if err := p.expect(TOKEN_INTO); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOKEN_VALUES); err != nil {
		return nil, err
	}

	stmt := &InsertStmt{Relation: name}
	for {
		if err := p.expect(TOKEN_LPAREN); err != nil {
			return nil, err
		}
		var row []relation.Value
		for {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			row = append(row, v)
			if p.curTokenIs(TOKEN_COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		stmt.Rows = append(stmt.Rows, row)

		if p.curTokenIs(TOKEN_COMMA) {
			p.nextToken() // consume comma, next row follows
			continue
		}
		break
	}

	return stmt, nil
}

func (p *Parser) parseValue() (relation.Value, error) {
	switch p.cur.Type {
	case TOKEN_INT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return relation.Value{}, fmt.Errorf("invalid integer literal %q at position %d", p.cur.Literal, p.cur.Pos)
		}
		p.nextToken()
		return relation.NewInt(n), nil
	case TOKEN_STRING:
		v := relation.NewStr(p.cur.Literal)
		p.nextToken()
		return v, nil
	default:
		return relation.Value{}, fmt.Errorf("expected literal, got %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
	}
}

// parseProject parses:
// PROJECT * | attr, ... FROM input
func (p *Parser) parseProject() (*ProjectStmt, error) {
	p.nextToken() // consume PROJECT

	stmt := &ProjectStmt{}
	if p.curTokenIs(TOKEN_STAR) {
		stmt.Star = true
		p.nextToken()
	} else {
		for {
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			stmt.Attrs = append(stmt.Attrs, name)
			if p.curTokenIs(TOKEN_COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}

	if err := p.expect(TOKEN_FROM); err != nil {
		return nil, err
	}
	input, err := p.parseInput()
	if err != nil {
		return nil, err
	}
	stmt.Input = input
	return stmt, nil
}

// parseRestrict parses:
// RESTRICT input [WHERE cond {AND|OR cond}]
func (p *Parser) parseRestrict() (*RestrictStmt, error) {
	p.nextToken() // consume RESTRICT

	input, err := p.parseInput()
	if err != nil {
		return nil, err
	}
	stmt := &RestrictStmt{Input: input}

	if p.curTokenIs(TOKEN_WHERE) {
		p.nextToken() // consume WHERE
		pred, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		stmt.Pred = pred
	}
	return stmt, nil
}

// parseInput parses an operator input: a relation name or a parenthesized
// nested query.
func (p *Parser) parseInput() (InputExpr, error) {
	switch p.cur.Type {
	case TOKEN_IDENT:
		name := p.cur.Literal
		p.nextToken()
		return &RelationRef{Name: name}, nil
	case TOKEN_LPAREN:
		p.nextToken() // consume '('
		var inner InputExpr
		var err error
		switch p.cur.Type {
		case TOKEN_PROJECT:
			inner, err = p.parseProject()
		case TOKEN_RESTRICT:
			inner, err = p.parseRestrict()
		default:
			return nil, fmt.Errorf("expected nested query, got %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
		}
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("expected relation name or nested query, got %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
	}
}

func (p *Parser) parsePredicate() (*PredicateExpr, error) {
	pred := &PredicateExpr{}
	for {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		pred.Conds = append(pred.Conds, cond)

		if p.curTokenIs(TOKEN_AND) || p.curTokenIs(TOKEN_OR) {
			pred.Conns = append(pred.Conns, p.cur.Type)
			p.nextToken()
			continue
		}
		break
	}
	return pred, nil
}

func (p *Parser) parseCondition() (ConditionExpr, error) {
	cond := ConditionExpr{}
	attr, err := p.parseIdentifier()
	if err != nil {
		return cond, err
	}
	cond.Attr = attr

	switch p.cur.Type {
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_LE, TOKEN_GT, TOKEN_GE:
		cond.Op = p.cur.Type
		p.nextToken()
	default:
		return cond, fmt.Errorf("expected comparison operator, got %v (%q) at position %d", p.cur.Type, p.cur.Literal, p.cur.Pos)
	}

	cond.Value, err = p.parseValue()
	if err != nil {
		return cond, err
	}
	return cond, nil
}

// parseShow parses SHOW RELATIONS.
func (p *Parser) parseShow() (Statement, error) {
	p.nextToken() // consume SHOW
	if err := p.expect(TOKEN_RELATIONS); err != nil {
		return nil, err
	}
	return &ShowRelationsStmt{}, nil
}

// parseDescribe parses DESCRIBE name.
func (p *Parser) parseDescribe() (Statement, error) {
	p.nextToken() // consume DESCRIBE
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	return &DescribeStmt{Name: name}, nil
}
