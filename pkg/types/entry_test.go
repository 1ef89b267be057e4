package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryAddElementRepeatingKeepsOrder(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())

	for _, v := range []string{"one", "two", "three"} {
		require.NoError(t, e.AddElement(&tag{Value: v}))
	}

	tags := AllOf[*tag](e).All()
	require.Len(t, tags, 3)
	assert.Equal(t, "one", tags[0].Value)
	assert.Equal(t, "two", tags[1].Value)
	assert.Equal(t, "three", tags[2].Value)
}

func TestEntryAddElementSingletonViolation(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	first := &note{Text: "first"}
	require.NoError(t, e.AddElement(first))

	err := e.AddElement(&note{Text: "second"})

	var cv *CardinalityViolationError
	require.ErrorAs(t, err, &cv)
	assert.ErrorIs(t, err, ErrCardinalityViolation)
	assert.Equal(t, ElementType("test.note"), cv.Type)
	assert.Equal(t, 2, cv.Count)

	notes := AllOf[*note](e).All()
	require.Len(t, notes, 1, "failed add must leave the store unchanged")
	assert.Same(t, first, notes[0])
}

// fakeTag claims the test.tag element type without being a *tag.
type fakeTag struct{}

func (*fakeTag) ElementType() ElementType { return "test.tag" }

func TestEntryAddElementErrors(t *testing.T) {
	tests := []struct {
		name  string
		owner EntryType
		el    Element
		want  error
	}{
		{"nil element", ownerA, nil, ErrInvalidElement},
		{"typed nil element", ownerA, (*tag)(nil), ErrInvalidElement},
		{"other Go type under a declared tag", ownerA, &fakeTag{}, ErrInvalidElement},
		{"undeclared owner", ownerB, &tag{Value: "x"}, ErrNotDeclared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntry(tt.owner, newTestProfile())
			assert.ErrorIs(t, e.AddElement(tt.el), tt.want)
			assert.Empty(t, e.ElementTypes())
			assert.False(t, e.Dirty())
		})
	}
}

func TestEntryRemoveElement(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	a, b := &tag{Value: "a"}, &tag{Value: "b"}
	require.NoError(t, e.AddElement(a))
	require.NoError(t, e.AddElement(b))

	assert.True(t, e.RemoveElement(a))
	assert.False(t, e.RemoveElement(a), "second removal finds nothing")
	assert.False(t, e.RemoveElement(&tag{Value: "b"}), "removal is by identity")
	assert.False(t, e.RemoveElement(nil))

	tags := AllOf[*tag](e).All()
	require.Len(t, tags, 1)
	assert.Same(t, b, tags[0])

	assert.True(t, e.RemoveElement(b))
	assert.Empty(t, e.ElementTypes())
}

func TestEntryViewIsLive(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	view := AllOf[*tag](e)
	assert.Equal(t, ElementType("test.tag"), view.Type())
	assert.Equal(t, 0, view.Len())

	require.NoError(t, view.Append(&tag{Value: "x"}))
	require.NoError(t, e.AddElement(&tag{Value: "y"}))

	assert.Equal(t, 2, view.Len(), "writes through the entry show in the view")
	assert.Equal(t, "y", view.At(1).Value)
	assert.Len(t, e.Elements("test.tag"), 2, "writes through the view show in the entry")

	assert.True(t, view.Remove(view.At(0)))
	assert.Equal(t, "y", view.At(0).Value)
}

func TestEntryViewEnforcesCardinality(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	view := AllOf[*note](e)
	require.NoError(t, view.Append(&note{Text: "1"}))
	assert.ErrorIs(t, view.Append(&note{Text: "2"}), ErrCardinalityViolation)
	assert.Equal(t, 1, view.Len())
}

func TestEntryElementsReturnsCopy(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	require.NoError(t, e.AddElement(&tag{Value: "a"}))

	els := e.Elements("test.tag")
	els[0] = &tag{Value: "replaced"}

	assert.Equal(t, "a", AllOf[*tag](e).At(0).Value)
}

func TestNewEntryFromIsShallow(t *testing.T) {
	p := newTestProfile()
	a := NewEntry(ownerA, p)
	a.ID = "urn:uuid:1"
	a.Title = "original"
	a.Categories().Add(NewCategory("urn:s", "t"))
	x := &tag{Value: "x"}
	require.NoError(t, a.AddElement(x))

	b := NewEntryFrom(ownerA, a)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Title, b.Title)
	assert.Equal(t, a.Categories().All(), b.Categories().All())

	// Element state is shared.
	x.Value = "mutated"
	assert.Equal(t, "mutated", AllOf[*tag](b).At(0).Value)
	assert.Same(t, AllOf[*tag](a).At(0), AllOf[*tag](b).At(0))

	// Sequences are not.
	assert.True(t, b.RemoveElement(x))
	assert.Equal(t, 0, AllOf[*tag](b).Len())
	assert.Equal(t, 1, AllOf[*tag](a).Len())

	// Nor are category lists.
	b.Categories().Add(NewCategory("urn:s", "u"))
	assert.Equal(t, 1, a.Categories().Len())
	assert.Equal(t, 2, b.Categories().Len())
}

func TestNewEntryFromChangesOwner(t *testing.T) {
	p := newTestProfile()
	require.NoError(t, p.Declare(ownerB, tagDescriptor()))

	a := NewEntry(ownerA, p)
	require.NoError(t, a.AddElement(&note{Text: "n"}))
	require.NoError(t, a.AddElement(&tag{Value: "t"}))

	b := NewEntryFrom(ownerB, a)
	assert.Equal(t, ownerB, b.Owner())
	assert.Same(t, p, b.Profile())

	err := b.Validate()
	assert.ErrorIs(t, err, ErrNotDeclared, "note is not declared for ownerB")
	assert.NoError(t, a.Validate())
}

func TestEntryValidateCardinality(t *testing.T) {
	p := NewProfile()
	require.NoError(t, p.Declare(ownerA, tagDescriptor()))
	require.NoError(t, p.Declare(ownerB, tagDescriptor().WithCardinality(Singleton)))

	a := NewEntry(ownerA, p)
	require.NoError(t, a.AddElement(&tag{Value: "1"}))
	require.NoError(t, a.AddElement(&tag{Value: "2"}))

	b := NewEntryFrom(ownerB, a)
	assert.ErrorIs(t, b.Validate(), ErrCardinalityViolation)
}

func TestEntryElementTypesOrder(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	require.NoError(t, e.AddElement(&tag{Value: "t"}))
	require.NoError(t, e.AddElement(&note{Text: "n"}))

	assert.Equal(t, []ElementType{"test.note", "test.tag"}, e.ElementTypes(),
		"declared types follow declaration order")
}

func TestEntryCategoriesAllowDuplicates(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	c := NewCategory(SchemeKind, GPrefix+"contact")

	e.Categories().Add(c)
	e.Categories().Add(c)

	assert.Equal(t, 2, e.Categories().Len())
	assert.True(t, e.Categories().Remove(c))
	assert.Equal(t, 1, e.Categories().Len())
	assert.True(t, e.HasCategory(c))
}

func TestEntryDirtyTracking(t *testing.T) {
	e := NewEntry(ownerA, newTestProfile())
	assert.False(t, e.Dirty())

	e.Categories().Add(NewCategory("", "x"))
	assert.True(t, e.Dirty())

	e.MarkClean()
	x := &tag{Value: "x"}
	require.NoError(t, e.AddElement(x))
	assert.True(t, e.Dirty())

	e.MarkClean()
	e.RemoveElement(x)
	assert.True(t, e.Dirty())

	e.MarkClean()
	e.Touch()
	assert.True(t, e.Dirty())
}

func TestFilterByCategory(t *testing.T) {
	p := newTestProfile()
	contact := NewCategory(SchemeKind, GPrefix+"contact")
	event := NewCategory(SchemeKind, GPrefix+"event")

	e1 := NewEntry(ownerA, p)
	e1.Categories().Add(contact)
	e2 := NewEntry(ownerA, p)
	e2.Categories().Add(event)
	e3 := NewEntry(ownerA, p)
	e3.Categories().Add(NewCategory("urn:labels", "starred"), contact)

	got := FilterByCategory([]*Entry{e1, e2, e3}, contact)
	require.Len(t, got, 2)
	assert.Same(t, e1, got[0])
	assert.Same(t, e3, got[1])
	assert.Empty(t, FilterByCategory(nil, contact))
}
