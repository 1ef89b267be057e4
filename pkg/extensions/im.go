package extensions

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// ImType tags Im elements.
const ImType types.ElementType = "gd.im"

// Instant messaging protocols.
const (
	ProtocolAIM        = types.GPrefix + "AIM"
	ProtocolMSN        = types.GPrefix + "MSN"
	ProtocolYahoo      = types.GPrefix + "YAHOO"
	ProtocolSkype      = types.GPrefix + "SKYPE"
	ProtocolQQ         = types.GPrefix + "QQ"
	ProtocolGoogleTalk = types.GPrefix + "GOOGLE_TALK"
	ProtocolICQ        = types.GPrefix + "ICQ"
	ProtocolJabber     = types.GPrefix + "JABBER"
)

// Im is an instant messaging address.
type Im struct {
	Address  string `xml:"address,attr" json:"address"`
	Protocol string `xml:"protocol,attr,omitempty" json:"protocol,omitempty"`
	Label    string `xml:"label,attr,omitempty" json:"label,omitempty"`
	Rel      string `xml:"rel,attr,omitempty" json:"rel,omitempty"`
	Primary  bool   `xml:"primary,attr,omitempty" json:"primary,omitempty"`
}

func (*Im) ElementType() types.ElementType { return ImType }

// ImDescriptor returns the default declaration of gd:im.
func ImDescriptor() types.Descriptor {
	return types.Descriptor{
		Type:        ImType,
		Namespace:   types.NamespaceG,
		LocalName:   "im",
		Cardinality: types.Repeating,
		New:         func() types.Element { return &Im{} },
	}
}

var protocolNames = map[string]string{
	"aim":         ProtocolAIM,
	"msn":         ProtocolMSN,
	"yahoo":       ProtocolYahoo,
	"skype":       ProtocolSkype,
	"qq":          ProtocolQQ,
	"google_talk": ProtocolGoogleTalk,
	"icq":         ProtocolICQ,
	"jabber":      ProtocolJabber,
}

// ParseIm parses "address" or "protocol:address", where protocol is a short
// name such as jabber or skype. A prefix that names no known protocol is
// taken as part of the address.
func ParseIm(s string) (*Im, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty IM address")
	}
	if name, addr, ok := strings.Cut(s, ":"); ok {
		if proto, known := protocolNames[strings.ToLower(name)]; known {
			if addr == "" {
				return nil, fmt.Errorf("IM address %q has no address", s)
			}
			return &Im{Address: addr, Protocol: proto}, nil
		}
	}
	return &Im{Address: s}, nil
}
