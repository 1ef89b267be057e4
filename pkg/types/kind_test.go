package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKind(calls *int) Kind {
	return Kind{
		Type:     ownerA,
		Category: NewCategory(SchemeKind, GPrefix+"a"),
		Declare: func(p *Profile) error {
			*calls++
			return p.Declare(ownerA, tagDescriptor())
		},
	}
}

func TestDeclareKindRunsHookOnce(t *testing.T) {
	p := NewProfile()
	var calls int

	require.NoError(t, p.DeclareKind(testKind(&calls)))
	require.NoError(t, p.DeclareKind(testKind(&calls)))

	assert.Equal(t, 1, calls)
	assert.Len(t, p.DescriptorsFor(ownerA), 1)
	assert.Len(t, p.Kinds(), 1)
}

func TestDeclareKindConflicts(t *testing.T) {
	var calls int
	tests := []struct {
		name string
		kind Kind
		want error
	}{
		{
			name: "same type with another category",
			kind: Kind{Type: ownerA, Category: NewCategory(SchemeKind, GPrefix+"other")},
			want: ErrConflictingDeclaration,
		},
		{
			name: "same category for another type",
			kind: Kind{Type: ownerB, Category: NewCategory(SchemeKind, GPrefix+"a")},
			want: ErrConflictingDeclaration,
		},
		{
			name: "empty type",
			kind: Kind{Category: NewCategory(SchemeKind, GPrefix+"z")},
			want: ErrInvalidKind,
		},
		{
			name: "category without term",
			kind: Kind{Type: "z", Category: Category{Scheme: SchemeKind}},
			want: ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile()
			require.NoError(t, p.DeclareKind(testKind(&calls)))

			assert.ErrorIs(t, p.DeclareKind(tt.kind), tt.want)

			k, ok := p.Kind(ownerA)
			require.True(t, ok)
			assert.Equal(t, GPrefix+"a", k.Category.Term)
		})
	}
}

func TestDeclareKindHookError(t *testing.T) {
	p := NewProfile()
	boom := errors.New("boom")
	err := p.DeclareKind(Kind{Type: "x", Declare: func(*Profile) error { return boom }})
	assert.ErrorIs(t, err, boom)
}

func TestDeclareKindHookErrorLeavesNothingBehind(t *testing.T) {
	p := NewProfile()
	boom := errors.New("boom")
	cat := NewCategory(SchemeKind, GPrefix+"x")
	calls := 0
	failing := Kind{Type: "x", Category: cat, Declare: func(p *Profile) error {
		calls++
		if err := p.Declare("x", noteDescriptor()); err != nil {
			return err
		}
		if calls == 1 {
			return boom
		}
		return p.Declare("x", tagDescriptor())
	}}

	require.ErrorIs(t, p.DeclareKind(failing), boom)
	_, ok := p.Kind("x")
	assert.False(t, ok)
	_, ok = p.KindFor([]Category{cat})
	assert.False(t, ok)
	assert.Empty(t, p.Kinds())
	assert.Empty(t, p.DescriptorsFor("x"))
	assert.Empty(t, p.Owners())

	// Declaring again runs the hook again.
	require.NoError(t, p.DeclareKind(failing))
	assert.Equal(t, 2, calls)
	assert.Len(t, p.DescriptorsFor("x"), 2)
	_, ok = p.Kind("x")
	assert.True(t, ok)
}

func TestDeclareKindSealed(t *testing.T) {
	p := NewProfile()
	var calls int
	require.NoError(t, p.DeclareKind(testKind(&calls)))
	p.Seal()

	assert.NoError(t, p.DeclareKind(testKind(&calls)))
	assert.ErrorIs(t, p.DeclareKind(GenericEntry), ErrProfileSealed)
}

func TestKindFor(t *testing.T) {
	p := NewProfile()
	var calls int
	require.NoError(t, p.DeclareKind(testKind(&calls)))
	require.NoError(t, p.DeclareKind(GenericEntry))

	k, ok := p.KindFor([]Category{
		NewCategory("urn:labels", "starred"),
		NewCategory(SchemeKind, GPrefix+"unknown"),
		NewCategory(SchemeKind, GPrefix+"a"),
	})
	require.True(t, ok)
	assert.Equal(t, ownerA, k.Type)

	_, ok = p.KindFor([]Category{NewCategory("urn:other-scheme", GPrefix+"a")})
	assert.False(t, ok, "only kind-scheme categories select a kind")

	_, ok = p.KindFor(nil)
	assert.False(t, ok)

	g, ok := p.Kind(GenericEntry.Type)
	require.True(t, ok)
	assert.Equal(t, Category{}, g.Category)
}

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{NewCategory(SchemeKind, GPrefix+"contact"), "{" + SchemeKind + "}" + GPrefix + "contact"},
		{NewCategory("", "plain"), "plain"},
		{Category{Scheme: "urn:s", Term: "t", Label: "ignored"}, "{urn:s}t"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cat.Key())
			assert.True(t, ParseCategory(tt.want).Equal(tt.cat))
		})
	}
}

func TestCategoryEqualIgnoresLabel(t *testing.T) {
	a := Category{Scheme: "urn:s", Term: "t", Label: "A"}
	b := Category{Scheme: "urn:s", Term: "t", Label: "B"}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewCategory("urn:s", "u")))
	assert.True(t, NewCategory(SchemeKind, "x").IsKind())
}
