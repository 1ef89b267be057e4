package types

import (
	"encoding/xml"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDeclare(t *testing.T) {
	tests := []struct {
		name    string
		first   Descriptor
		second  Descriptor
		wantErr error
		wantLen int
	}{
		{
			name:    "identical redeclaration is idempotent",
			first:   tagDescriptor(),
			second:  tagDescriptor(),
			wantLen: 1,
		},
		{
			name:    "different cardinality conflicts",
			first:   tagDescriptor(),
			second:  tagDescriptor().WithCardinality(Singleton),
			wantErr: ErrConflictingDeclaration,
			wantLen: 1,
		},
		{
			name:  "different namespace conflicts",
			first: tagDescriptor(),
			second: func() Descriptor {
				d := tagDescriptor()
				d.Namespace = "urn:other"
				return d
			}(),
			wantErr: ErrConflictingDeclaration,
			wantLen: 1,
		},
		{
			name:  "same element name under another type conflicts",
			first: tagDescriptor(),
			second: func() Descriptor {
				d := tagDescriptor()
				d.Type = "test.label"
				return d
			}(),
			wantErr: ErrConflictingDeclaration,
			wantLen: 1,
		},
		{
			name:    "distinct types both register",
			first:   tagDescriptor(),
			second:  noteDescriptor(),
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile()
			require.NoError(t, p.Declare(ownerA, tt.first))

			err := p.Declare(ownerA, tt.second)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			descs := p.DescriptorsFor(ownerA)
			require.Len(t, descs, tt.wantLen)
			assert.True(t, descs[0].Compatible(tt.first), "first declaration must survive")
		})
	}
}

func TestProfileDeclareConflictDetails(t *testing.T) {
	p := NewProfile()
	require.NoError(t, p.Declare(ownerA, tagDescriptor()))

	err := p.Declare(ownerA, tagDescriptor().WithCardinality(Singleton))

	var conflict *ConflictingDeclarationError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, ownerA, conflict.Owner)
	assert.Equal(t, Repeating, conflict.Existing.Cardinality)
	assert.Equal(t, Singleton, conflict.Proposed.Cardinality)

	d, err := p.Lookup(ownerA, "test.tag")
	require.NoError(t, err)
	assert.Equal(t, Repeating, d.Cardinality)
}

func TestProfileDeclareInvalid(t *testing.T) {
	tests := []struct {
		name  string
		owner EntryType
		desc  Descriptor
		want  error
	}{
		{"empty owner", "", tagDescriptor(), ErrInvalidKind},
		{"empty type", ownerA, Descriptor{Namespace: testNS, LocalName: "x", Cardinality: Repeating, New: tagDescriptor().New}, ErrInvalidDescriptor},
		{"empty namespace", ownerA, Descriptor{Type: "x", LocalName: "x", Cardinality: Repeating, New: tagDescriptor().New}, ErrInvalidDescriptor},
		{"empty local name", ownerA, Descriptor{Type: "x", Namespace: testNS, Cardinality: Repeating, New: tagDescriptor().New}, ErrInvalidDescriptor},
		{"zero cardinality", ownerA, tagDescriptor().WithCardinality(0), ErrInvalidDescriptor},
		{"nil constructor", ownerA, Descriptor{Type: "x", Namespace: testNS, LocalName: "x", Cardinality: Repeating}, ErrInvalidDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile()
			assert.ErrorIs(t, p.Declare(tt.owner, tt.desc), tt.want)
			assert.Empty(t, p.Owners())
		})
	}
}

func TestProfileOwnersAreIsolated(t *testing.T) {
	p := NewProfile()
	require.NoError(t, p.Declare(ownerA, tagDescriptor()))
	require.NoError(t, p.Declare(ownerB, tagDescriptor().WithCardinality(Singleton)))
	require.NoError(t, p.Declare(ownerB, noteDescriptor()))

	a := p.DescriptorsFor(ownerA)
	b := p.DescriptorsFor(ownerB)
	require.Len(t, a, 1)
	require.Len(t, b, 2)
	assert.Equal(t, Repeating, a[0].Cardinality)
	assert.Equal(t, Singleton, b[0].Cardinality)

	_, err := p.Lookup(ownerA, "test.note")
	assert.ErrorIs(t, err, ErrNotDeclared)
	assert.Equal(t, []EntryType{ownerA, ownerB}, p.Owners())
}

func TestProfileDescriptorsForUndeclaredOwner(t *testing.T) {
	p := NewProfile()
	descs := p.DescriptorsFor("nobody")
	assert.NotNil(t, descs)
	assert.Empty(t, descs)
}

func TestProfileDescriptorsForReturnsCopy(t *testing.T) {
	p := newTestProfile()
	descs := p.DescriptorsFor(ownerA)
	descs[0].Cardinality = Repeating

	d, err := p.Lookup(ownerA, "test.note")
	require.NoError(t, err)
	assert.Equal(t, Singleton, d.Cardinality)
}

func TestProfileLookup(t *testing.T) {
	p := newTestProfile()

	d, err := p.Lookup(ownerA, "test.tag")
	require.NoError(t, err)
	assert.Equal(t, "tag", d.LocalName)

	_, err = p.Lookup(ownerA, "test.missing")
	var nd *NotDeclaredError
	require.ErrorAs(t, err, &nd)
	assert.Equal(t, ownerA, nd.Owner)
	assert.Equal(t, ElementType("test.missing"), nd.Type)

	_, err = p.Lookup(ownerB, "test.tag")
	assert.ErrorIs(t, err, ErrNotDeclared)
}

func TestProfileLookupName(t *testing.T) {
	p := newTestProfile()

	d, err := p.LookupName(ownerA, xml.Name{Space: testNS, Local: "note"})
	require.NoError(t, err)
	assert.Equal(t, ElementType("test.note"), d.Type)

	_, err = p.LookupName(ownerA, xml.Name{Space: "urn:elsewhere", Local: "note"})
	var nd *NotDeclaredError
	require.ErrorAs(t, err, &nd)
	assert.Equal(t, "urn:elsewhere", nd.Name.Space)
}

func TestProfileSeal(t *testing.T) {
	p := newTestProfile()
	p.Seal()
	assert.True(t, p.Sealed())

	assert.NoError(t, p.Declare(ownerA, tagDescriptor()), "no-op redeclaration is allowed")
	assert.ErrorIs(t, p.Declare(ownerB, tagDescriptor()), ErrProfileSealed)
	assert.ErrorIs(t, p.Declare(ownerA, tagDescriptor().WithCardinality(Singleton)), ErrConflictingDeclaration)
	assert.Len(t, p.DescriptorsFor(ownerA), 2)
}

func TestProfileMustDeclarePanicsOnConflict(t *testing.T) {
	p := newTestProfile()
	assert.Panics(t, func() {
		p.MustDeclare(ownerA, noteDescriptor().WithCardinality(Repeating))
	})
}

func TestProfileConcurrentLookupAfterSeal(t *testing.T) {
	p := newTestProfile()
	p.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := p.Lookup(ownerA, "test.tag")
				assert.NoError(t, err)
				assert.Len(t, p.DescriptorsFor(ownerA), 2)
			}
		}()
	}
	wg.Wait()
}
