package extensions

import "github.com/mesh-intelligence/gentry/pkg/types"

// EmailType tags Email elements.
const EmailType types.ElementType = "gd.email"

// Email is an email address.
type Email struct {
	Address string `xml:"address,attr" json:"address"`
	Label   string `xml:"label,attr,omitempty" json:"label,omitempty"`
	Rel     string `xml:"rel,attr,omitempty" json:"rel,omitempty"`
	Primary bool   `xml:"primary,attr,omitempty" json:"primary,omitempty"`
}

func (*Email) ElementType() types.ElementType { return EmailType }

// EmailDescriptor returns the default declaration of gd:email.
func EmailDescriptor() types.Descriptor {
	return types.Descriptor{
		Type:        EmailType,
		Namespace:   types.NamespaceG,
		LocalName:   "email",
		Cardinality: types.Repeating,
		New:         func() types.Element { return &Email{} },
	}
}
