package types

import (
	"fmt"
	"slices"
)

// Kind binds an entry type to the category that labels it and to the hook
// that declares the extensions it accepts. Kinds are registered explicitly
// with Profile.DeclareKind; nothing is discovered from Go types.
type Kind struct {
	Type     EntryType
	Category Category // zero for kinds that carry no label

	// Declare registers the kind's extension descriptors. It runs once, the
	// first time the kind is declared on a profile. May be nil.
	Declare func(p *Profile) error
}

// GenericEntry is the kind of entries that carry no known kind label.
var GenericEntry = Kind{Type: "entry"}

// DeclareKind registers k and runs its declaration hook. Declaring the same
// kind again is a no-op. Binding a type to a second category, or a category
// to a second type, fails with ErrConflictingDeclaration.
func (p *Profile) DeclareKind(k Kind) error {
	if k.Type == "" {
		return fmt.Errorf("%w: empty entry type", ErrInvalidKind)
	}
	if k.Category != (Category{}) && k.Category.Term == "" {
		return fmt.Errorf("%w: %s has a category without a term", ErrInvalidKind, k.Type)
	}
	key := k.Category.Key()
	labeled := k.Category != (Category{})

	p.mu.Lock()
	if existing, ok := p.kinds[k.Type]; ok {
		p.mu.Unlock()
		if existing.Category.Equal(k.Category) {
			return nil
		}
		return fmt.Errorf("%w: kind %s is labeled %s, not %s",
			ErrConflictingDeclaration, k.Type, existing.Category, k.Category)
	}
	if other, ok := p.byCategory[key]; labeled && ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: category %s already labels kind %s",
			ErrConflictingDeclaration, k.Category, other)
	}
	if p.sealed {
		p.mu.Unlock()
		return ErrProfileSealed
	}
	p.kinds[k.Type] = k
	p.kindOrder = append(p.kindOrder, k.Type)
	if labeled {
		p.byCategory[key] = k.Type
	}
	snap := p.snapshotLocked()
	p.mu.Unlock()

	// The hook calls back into Declare, so it runs without the lock held.
	if k.Declare != nil {
		if err := k.Declare(p); err != nil {
			p.mu.Lock()
			p.restoreLocked(snap)
			delete(p.kinds, k.Type)
			p.kindOrder = slices.DeleteFunc(p.kindOrder, func(t EntryType) bool { return t == k.Type })
			if labeled {
				delete(p.byCategory, key)
			}
			p.mu.Unlock()
			return fmt.Errorf("declare extensions for %s: %w", k.Type, err)
		}
	}
	return nil
}

// declSnapshot records how many descriptors each owner had declared.
type declSnapshot map[EntryType]int

func (p *Profile) snapshotLocked() declSnapshot {
	snap := make(declSnapshot, len(p.owners))
	for owner, decls := range p.owners {
		snap[owner] = len(decls.order)
	}
	return snap
}

// restoreLocked drops every descriptor declared after snap was taken, so a
// failed kind hook leaves no partial declarations behind.
func (p *Profile) restoreLocked(snap declSnapshot) {
	for owner, decls := range p.owners {
		keep, ok := snap[owner]
		if !ok {
			delete(p.owners, owner)
			continue
		}
		for _, typ := range decls.order[keep:] {
			delete(decls.byName, decls.byType[typ].Name())
			delete(decls.byType, typ)
		}
		decls.order = decls.order[:keep]
	}
}

// Kind returns the kind registered for t.
func (p *Profile) Kind(t EntryType) (Kind, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	k, ok := p.kinds[t]
	return k, ok
}

// KindFor returns the kind named by the first kind-scheme category in cats
// that the profile knows.
func (p *Profile) KindFor(cats []Category) (Kind, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range cats {
		if !c.IsKind() {
			continue
		}
		if t, ok := p.byCategory[c.Key()]; ok {
			return p.kinds[t], true
		}
	}
	return Kind{}, false
}

// Kinds returns the registered kinds in declaration order.
func (p *Profile) Kinds() []Kind {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Kind, 0, len(p.kindOrder))
	for _, t := range p.kindOrder {
		out = append(out, p.kinds[t])
	}
	return out
}
