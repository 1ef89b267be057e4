package types

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Entry is a generic entry: Atom base fields, an ordered list of category
// labels, and a store of extension elements keyed by element type.
//
// The entry does not synchronize access. The category list and element
// views it hands out write through to the entry, so a caller iterating one
// while another mutates it must serialize the two.
type Entry struct {
	ID      string
	Title   string
	Updated time.Time

	// Foreign holds elements read from a document that no declaration
	// covers, in document order.
	Foreign []ForeignElement

	owner      EntryType
	profile    *Profile
	categories *CategoryList
	store      map[ElementType][]Element
	dirty      bool
}

// NewEntry returns an empty entry owned by owner. Element declarations are
// looked up in profile, which must not be nil.
func NewEntry(owner EntryType, profile *Profile) *Entry {
	e := &Entry{
		owner:   owner,
		profile: profile,
		store:   make(map[ElementType][]Element),
	}
	e.categories = &CategoryList{entry: e}
	return e
}

// NewEntryFrom returns a shallow copy of src owned by owner. Categories are
// copied by value. Each element sequence is copied but the elements are
// shared, so changing an element's fields shows through both entries while
// adding or removing elements on one leaves the other alone.
func NewEntryFrom(owner EntryType, src *Entry) *Entry {
	e := NewEntry(owner, src.profile)
	e.ID = src.ID
	e.Title = src.Title
	e.Updated = src.Updated
	if len(src.Foreign) > 0 {
		e.Foreign = append([]ForeignElement(nil), src.Foreign...)
	}
	e.categories.items = append([]Category(nil), src.categories.items...)
	for typ, seq := range src.store {
		e.store[typ] = append([]Element(nil), seq...)
	}
	e.dirty = src.dirty
	return e
}

// Owner returns the entry type declarations are looked up under.
func (e *Entry) Owner() EntryType { return e.owner }

// Profile returns the profile the entry was built with.
func (e *Entry) Profile() *Profile { return e.profile }

// Categories returns the entry's live category list.
func (e *Entry) Categories() *CategoryList { return e.categories }

// HasCategory reports whether the entry carries c.
func (e *Entry) HasCategory(c Category) bool { return e.categories.Contains(c) }

// AddElement appends el to the sequence for its type. It fails with
// ErrInvalidElement for a nil element or one whose Go type differs from the
// declared constructor's, with *NotDeclaredError if the owner did not
// declare the type, and with *CardinalityViolationError if the type is a
// singleton already present. A failed add leaves the store unchanged.
func (e *Entry) AddElement(el Element) error {
	if isNilElement(el) {
		return fmt.Errorf("%w: nil element", ErrInvalidElement)
	}
	typ := el.ElementType()
	d, err := e.profile.Lookup(e.owner, typ)
	if err != nil {
		return err
	}
	if err := checkElementType(d, el); err != nil {
		return err
	}
	seq := e.store[typ]
	if d.Cardinality == Singleton && len(seq) >= 1 {
		return &CardinalityViolationError{Owner: e.owner, Type: typ, Count: len(seq) + 1}
	}
	e.store[typ] = append(seq, el)
	e.dirty = true
	return nil
}

// RemoveElement removes el, matched by identity, and reports whether it
// was present.
func (e *Entry) RemoveElement(el Element) bool {
	if el == nil {
		return false
	}
	typ := el.ElementType()
	seq := e.store[typ]
	for i, x := range seq {
		if x == el {
			e.store[typ] = append(seq[:i:i], seq[i+1:]...)
			if len(e.store[typ]) == 0 {
				delete(e.store, typ)
			}
			e.dirty = true
			return true
		}
	}
	return false
}

// Elements returns a copy of the sequence stored for typ.
func (e *Entry) Elements(typ ElementType) []Element {
	return append([]Element(nil), e.store[typ]...)
}

// ElementTypes returns the types with at least one stored element: declared
// types first in declaration order, then any others sorted.
func (e *Entry) ElementTypes() []ElementType {
	seen := make(map[ElementType]bool, len(e.store))
	var out []ElementType
	for _, d := range e.profile.DescriptorsFor(e.owner) {
		if len(e.store[d.Type]) > 0 {
			out = append(out, d.Type)
			seen[d.Type] = true
		}
	}
	var rest []ElementType
	for typ, seq := range e.store {
		if !seen[typ] && len(seq) > 0 {
			rest = append(rest, typ)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

// Validate checks the store against the owner's declarations. A shallow
// copy into another kind can carry types the new owner never declared;
// writers call Validate before emitting a document.
func (e *Entry) Validate() error {
	var errs []error
	for _, typ := range e.ElementTypes() {
		d, err := e.profile.Lookup(e.owner, typ)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, el := range e.store[typ] {
			if err := checkElementType(d, el); err != nil {
				errs = append(errs, err)
				break
			}
		}
		if n := len(e.store[typ]); d.Cardinality == Singleton && n > 1 {
			errs = append(errs, &CardinalityViolationError{Owner: e.owner, Type: typ, Count: n})
		}
	}
	return errors.Join(errs...)
}

// Dirty reports whether the entry changed since it was built or last
// marked clean.
func (e *Entry) Dirty() bool { return e.dirty }

// MarkClean clears the dirty flag; stores call it after persisting.
func (e *Entry) MarkClean() { e.dirty = false }

// Touch marks the entry dirty. Callers that change elements in place use it,
// since the store cannot see field changes.
func (e *Entry) Touch() { e.dirty = true }

// FilterByCategory returns the entries that carry c, in order.
func FilterByCategory(entries []*Entry, c Category) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if e.HasCategory(c) {
			out = append(out, e)
		}
	}
	return out
}
