package types

import (
	"encoding/xml"
	"fmt"
)

// ElementType is the opaque tag that identifies an extension element type.
type ElementType string

// Cardinality bounds how many instances of an element an entry may hold.
type Cardinality int

// Cardinality values. The zero value is deliberately invalid so a
// descriptor built without one fails declaration.
const (
	Singleton Cardinality = iota + 1
	Repeating
)

func (c Cardinality) String() string {
	switch c {
	case Singleton:
		return "singleton"
	case Repeating:
		return "repeating"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// Descriptor describes one extension element type: the tag it is stored
// under, the qualified XML name it is read from and written to, how many
// instances an entry may hold, and how to construct an empty instance.
type Descriptor struct {
	Type        ElementType
	Namespace   string
	LocalName   string
	Cardinality Cardinality

	// New returns an empty instance ready to be decoded into. It must return
	// a pointer so instances have identity in the entry store.
	New func() Element
}

// Name returns the qualified element name.
func (d Descriptor) Name() xml.Name {
	return xml.Name{Space: d.Namespace, Local: d.LocalName}
}

// Compatible reports whether d and o describe the same element the same
// way. The constructor is not compared.
func (d Descriptor) Compatible(o Descriptor) bool {
	return d.Type == o.Type &&
		d.Namespace == o.Namespace &&
		d.LocalName == o.LocalName &&
		d.Cardinality == o.Cardinality
}

// WithCardinality returns a copy of d with cardinality c.
func (d Descriptor) WithCardinality(c Cardinality) Descriptor {
	d.Cardinality = c
	return d
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s({%s}%s, %s)", d.Type, d.Namespace, d.LocalName, d.Cardinality)
}

func (d Descriptor) validate() error {
	switch {
	case d.Type == "":
		return fmt.Errorf("%w: empty element type", ErrInvalidDescriptor)
	case d.Namespace == "":
		return fmt.Errorf("%w: %s has no namespace", ErrInvalidDescriptor, d.Type)
	case d.LocalName == "":
		return fmt.Errorf("%w: %s has no local name", ErrInvalidDescriptor, d.Type)
	case d.Cardinality != Singleton && d.Cardinality != Repeating:
		return fmt.Errorf("%w: %s has %s", ErrInvalidDescriptor, d.Type, d.Cardinality)
	case d.New == nil:
		return fmt.Errorf("%w: %s has no constructor", ErrInvalidDescriptor, d.Type)
	}
	return nil
}
