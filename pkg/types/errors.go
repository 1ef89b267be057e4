package types

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Declaration and store errors. The typed errors below unwrap to these, so
// callers can match with errors.Is and still reach the details via errors.As.
var (
	ErrConflictingDeclaration = errors.New("conflicting extension declaration")
	ErrNotDeclared            = errors.New("extension not declared")
	ErrCardinalityViolation   = errors.New("cardinality violation")
	ErrProfileSealed          = errors.New("profile is sealed")
	ErrInvalidDescriptor      = errors.New("invalid extension descriptor")
	ErrInvalidKind            = errors.New("invalid kind")
	ErrInvalidElement         = errors.New("invalid extension element")
)

// ConflictingDeclarationError reports a descriptor that disagrees with one
// already declared for the same owner and element type (or element name).
type ConflictingDeclarationError struct {
	Owner    EntryType
	Existing Descriptor
	Proposed Descriptor
}

func (e *ConflictingDeclarationError) Error() string {
	return fmt.Sprintf("%s: owner %s declares %s, cannot redeclare as %s",
		ErrConflictingDeclaration, e.Owner, e.Existing, e.Proposed)
}

func (e *ConflictingDeclarationError) Unwrap() error { return ErrConflictingDeclaration }

// NotDeclaredError reports a lookup for an element the owner never declared.
// Either Type or Name is set, depending on how the lookup was made.
type NotDeclaredError struct {
	Owner EntryType
	Type  ElementType
	Name  xml.Name
}

func (e *NotDeclaredError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: owner %s has no element type %s", ErrNotDeclared, e.Owner, e.Type)
	}
	return fmt.Sprintf("%s: owner %s has no element {%s}%s", ErrNotDeclared, e.Owner, e.Name.Space, e.Name.Local)
}

func (e *NotDeclaredError) Unwrap() error { return ErrNotDeclared }

// CardinalityViolationError reports an attempt to hold more than one
// instance of a singleton element.
type CardinalityViolationError struct {
	Owner EntryType
	Type  ElementType
	Count int // instances that would have been stored
}

func (e *CardinalityViolationError) Error() string {
	return fmt.Sprintf("%s: owner %s allows a single %s, got %d",
		ErrCardinalityViolation, e.Owner, e.Type, e.Count)
}

func (e *CardinalityViolationError) Unwrap() error { return ErrCardinalityViolation }
