package types

const testNS = "urn:test:ext"

// note is a singleton test element.
type note struct {
	Text string `xml:",chardata"`
}

func (*note) ElementType() ElementType { return "test.note" }

func noteDescriptor() Descriptor {
	return Descriptor{
		Type:        "test.note",
		Namespace:   testNS,
		LocalName:   "note",
		Cardinality: Singleton,
		New:         func() Element { return &note{} },
	}
}

// tag is a repeating test element.
type tag struct {
	Value string `xml:"value,attr"`
}

func (*tag) ElementType() ElementType { return "test.tag" }

func tagDescriptor() Descriptor {
	return Descriptor{
		Type:        "test.tag",
		Namespace:   testNS,
		LocalName:   "tag",
		Cardinality: Repeating,
		New:         func() Element { return &tag{} },
	}
}

const (
	ownerA EntryType = "a"
	ownerB EntryType = "b"
)

// newTestProfile declares note and tag for ownerA.
func newTestProfile() *Profile {
	p := NewProfile()
	p.MustDeclare(ownerA, noteDescriptor())
	p.MustDeclare(ownerA, tagDescriptor())
	return p
}
