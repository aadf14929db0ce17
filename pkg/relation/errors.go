package relation

import "errors"

// Common errors for relation operations. Callers match with errors.Is;
// wrapped forms carry the offending attribute or key.
var (
	ErrSchemaViolation    = errors.New("relation: schema violation")
	ErrDuplicateKey       = errors.New("relation: duplicate primary key")
	ErrDuplicateAttribute = errors.New("relation: duplicate attribute name")
	ErrUnknownAttribute   = errors.New("relation: unknown attribute")
	ErrInvalidKeyIndex    = errors.New("relation: primary key index out of range")
)
