package extensions

import "github.com/mesh-intelligence/gentry/pkg/types"

// PostalAddressType tags PostalAddress elements.
const PostalAddressType types.ElementType = "gd.postalAddress"

// PostalAddress is a postal address as free text; line breaks are kept.
type PostalAddress struct {
	Value   string `xml:",chardata" json:"value"`
	Rel     string `xml:"rel,attr,omitempty" json:"rel,omitempty"`
	Label   string `xml:"label,attr,omitempty" json:"label,omitempty"`
	Primary bool   `xml:"primary,attr,omitempty" json:"primary,omitempty"`
}

func (*PostalAddress) ElementType() types.ElementType { return PostalAddressType }

// PostalAddressDescriptor returns the default declaration of gd:postalAddress.
func PostalAddressDescriptor() types.Descriptor {
	return types.Descriptor{
		Type:        PostalAddressType,
		Namespace:   types.NamespaceG,
		LocalName:   "postalAddress",
		Cardinality: types.Repeating,
		New:         func() types.Element { return &PostalAddress{} },
	}
}
