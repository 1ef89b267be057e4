package extensions

import "github.com/mesh-intelligence/gentry/pkg/types"

// PhoneNumberType tags PhoneNumber elements.
const PhoneNumberType types.ElementType = "gd.phoneNumber"

// PhoneNumber is a phone number in free text, optionally with a tel: URI.
type PhoneNumber struct {
	Number  string `xml:",chardata" json:"number"`
	Rel     string `xml:"rel,attr,omitempty" json:"rel,omitempty"`
	Label   string `xml:"label,attr,omitempty" json:"label,omitempty"`
	URI     string `xml:"uri,attr,omitempty" json:"uri,omitempty"`
	Primary bool   `xml:"primary,attr,omitempty" json:"primary,omitempty"`
}

func (*PhoneNumber) ElementType() types.ElementType { return PhoneNumberType }

// PhoneNumberDescriptor returns the default declaration of gd:phoneNumber.
func PhoneNumberDescriptor() types.Descriptor {
	return types.Descriptor{
		Type:        PhoneNumberType,
		Namespace:   types.NamespaceG,
		LocalName:   "phoneNumber",
		Cardinality: types.Repeating,
		New:         func() types.Element { return &PhoneNumber{} },
	}
}
