package types

import (
	"encoding/xml"
	"fmt"
	"sort"
	"sync"
)

// EntryType names an owner of extension declarations, typically one per
// entry kind.
type EntryType string

// Profile records which extension elements each entry type accepts and
// which kinds are known. Declarations are additive: nothing is removed for
// the life of the profile.
//
// Declaration is expected to finish before documents are read or written.
// Seal marks that point; afterwards only lookups and no-op redeclarations
// succeed. Lookups are safe for concurrent use.
type Profile struct {
	mu         sync.RWMutex
	owners     map[EntryType]*declarations
	kinds      map[EntryType]Kind
	kindOrder  []EntryType
	byCategory map[string]EntryType
	sealed     bool
}

// declarations is the descriptor table for one owner.
type declarations struct {
	order  []ElementType
	byType map[ElementType]Descriptor
	byName map[xml.Name]ElementType
}

// NewProfile returns an empty, unsealed profile.
func NewProfile() *Profile {
	return &Profile{
		owners:     make(map[EntryType]*declarations),
		kinds:      make(map[EntryType]Kind),
		byCategory: make(map[string]EntryType),
	}
}

// Declare registers d for owner. Redeclaring a compatible descriptor is a
// no-op. A descriptor that disagrees with an earlier one for the same type,
// or that claims an element name already bound to another type, fails with
// *ConflictingDeclarationError and the earlier declaration is kept.
func (p *Profile) Declare(owner EntryType, d Descriptor) error {
	if owner == "" {
		return fmt.Errorf("%w: empty owner", ErrInvalidKind)
	}
	if err := d.validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	decls := p.owners[owner]
	if decls != nil {
		if existing, ok := decls.byType[d.Type]; ok {
			if existing.Compatible(d) {
				return nil
			}
			return &ConflictingDeclarationError{Owner: owner, Existing: existing, Proposed: d}
		}
		if other, ok := decls.byName[d.Name()]; ok {
			return &ConflictingDeclarationError{Owner: owner, Existing: decls.byType[other], Proposed: d}
		}
	}
	if p.sealed {
		return ErrProfileSealed
	}

	if decls == nil {
		decls = &declarations{
			byType: make(map[ElementType]Descriptor),
			byName: make(map[xml.Name]ElementType),
		}
		p.owners[owner] = decls
	}
	decls.order = append(decls.order, d.Type)
	decls.byType[d.Type] = d
	decls.byName[d.Name()] = d.Type
	return nil
}

// MustDeclare is Declare for package initialization; it panics on error.
func (p *Profile) MustDeclare(owner EntryType, d Descriptor) {
	if err := p.Declare(owner, d); err != nil {
		panic(err)
	}
}

// DescriptorsFor returns owner's descriptors in declaration order. An owner
// with no declarations yields an empty, non-nil slice.
func (p *Profile) DescriptorsFor(owner EntryType) []Descriptor {
	p.mu.RLock()
	defer p.mu.RUnlock()

	decls := p.owners[owner]
	if decls == nil {
		return []Descriptor{}
	}
	out := make([]Descriptor, 0, len(decls.order))
	for _, t := range decls.order {
		out = append(out, decls.byType[t])
	}
	return out
}

// Lookup returns owner's descriptor for typ, or *NotDeclaredError.
func (p *Profile) Lookup(owner EntryType, typ ElementType) (Descriptor, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if decls := p.owners[owner]; decls != nil {
		if d, ok := decls.byType[typ]; ok {
			return d, nil
		}
	}
	return Descriptor{}, &NotDeclaredError{Owner: owner, Type: typ}
}

// LookupName returns the descriptor owner declared for the qualified
// element name, or *NotDeclaredError. Document readers route children
// through it.
func (p *Profile) LookupName(owner EntryType, name xml.Name) (Descriptor, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if decls := p.owners[owner]; decls != nil {
		if t, ok := decls.byName[name]; ok {
			return decls.byType[t], nil
		}
	}
	return Descriptor{}, &NotDeclaredError{Owner: owner, Name: name}
}

// Owners returns every entry type with at least one declaration, sorted.
func (p *Profile) Owners() []EntryType {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]EntryType, 0, len(p.owners))
	for owner := range p.owners {
		out = append(out, owner)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Seal ends the declaration phase. It is idempotent.
func (p *Profile) Seal() {
	p.mu.Lock()
	p.sealed = true
	p.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (p *Profile) Sealed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sealed
}
