package types

import "strings"

// Well-known namespaces and schemes.
const (
	NamespaceAtom = "http://www.w3.org/2005/Atom"
	NamespaceG    = "http://schemas.google.com/g/2005"

	// GPrefix prefixes kind terms and rel values in the g namespace.
	GPrefix = NamespaceG + "#"

	// SchemeKind is the category scheme that labels an entry's kind.
	SchemeKind = GPrefix + "kind"
)

// Category labels an entry with a (scheme, term) pair. Two categories are
// equal when scheme and term match; Label is display text only.
type Category struct {
	Scheme string `json:"scheme,omitempty"`
	Term   string `json:"term"`
	Label  string `json:"label,omitempty"`
}

// NewCategory returns the category for scheme and term.
func NewCategory(scheme, term string) Category {
	return Category{Scheme: scheme, Term: term}
}

// Equal reports whether c and o carry the same scheme and term.
func (c Category) Equal(o Category) bool {
	return c.Scheme == o.Scheme && c.Term == o.Term
}

// Key returns a stable string form usable as a map key: {scheme}term, or
// the bare term when there is no scheme.
func (c Category) Key() string {
	if c.Scheme == "" {
		return c.Term
	}
	return "{" + c.Scheme + "}" + c.Term
}

// ParseCategory parses the form produced by Key.
func ParseCategory(key string) Category {
	if strings.HasPrefix(key, "{") {
		if i := strings.Index(key, "}"); i > 0 {
			return Category{Scheme: key[1:i], Term: key[i+1:]}
		}
	}
	return Category{Term: key}
}

func (c Category) String() string { return c.Key() }

// IsKind reports whether c is a kind label.
func (c Category) IsKind() bool { return c.Scheme == SchemeKind }
