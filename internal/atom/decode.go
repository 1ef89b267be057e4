package atom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// Decoding errors.
var (
	ErrNotEntry  = errors.New("document is not an Atom entry")
	ErrMalformed = errors.New("malformed entry document")
)

var entryName = xml.Name{Space: types.NamespaceAtom, Local: "entry"}

// atomCategory is the wire form of <category>.
type atomCategory struct {
	Scheme string `xml:"scheme,attr,omitempty"`
	Term   string `xml:"term,attr"`
	Label  string `xml:"label,attr,omitempty"`
}

// entryHead is the first-pass view of a document: just enough to pick the
// kind before any extension is decoded.
type entryHead struct {
	XMLName    xml.Name
	Categories []atomCategory `xml:"http://www.w3.org/2005/Atom category"`
}

// Decoder reads entry documents against a profile.
type Decoder struct {
	Profile *types.Profile
	Policy  Policy
	Logger  *slog.Logger // nil means slog.Default()
	Metrics *Metrics
}

// Decode reads one entry document from r.
func (d *Decoder) Decode(r io.Reader) (*types.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}
	return d.DecodeBytes(data)
}

// DecodeBytes reads one entry document from data. The returned entry is
// owned by the kind its categories name, or by the generic entry type, and
// is marked clean.
func (d *Decoder) DecodeBytes(data []byte) (*types.Entry, error) {
	var head entryHead
	if err := newXMLDecoder(data).Decode(&head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if head.XMLName != entryName {
		return nil, fmt.Errorf("%w: root element is {%s}%s", ErrNotEntry, head.XMLName.Space, head.XMLName.Local)
	}

	kind := d.kindOf(head.Categories)
	e := types.NewEntry(kind.Type, d.Profile)

	dec := newXMLDecoder(data)
	if err := skipToRoot(dec); err != nil {
		return nil, err
	}
	if err := d.readChildren(dec, e); err != nil {
		return nil, err
	}

	e.MarkClean()
	d.Metrics.decoded(kind.Type)
	return e, nil
}

func newXMLDecoder(data []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

func (d *Decoder) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *Decoder) kindOf(wire []atomCategory) types.Kind {
	cats := make([]types.Category, 0, len(wire))
	for _, c := range wire {
		cats = append(cats, types.Category{Scheme: c.Scheme, Term: c.Term})
	}
	if k, ok := d.Profile.KindFor(cats); ok {
		return k
	}
	if k, ok := d.Profile.Kind(types.GenericEntry.Type); ok {
		return k
	}
	return types.GenericEntry
}

// skipToRoot consumes tokens up to and including the root start element.
func skipToRoot(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if _, ok := tok.(xml.StartElement); ok {
			return nil
		}
	}
}

// readChildren reads the root's children up to its end element.
func (d *Decoder) readChildren(dec *xml.Decoder, e *types.Entry) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.readChild(dec, e, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (d *Decoder) readChild(dec *xml.Decoder, e *types.Entry, start xml.StartElement) error {
	if start.Name.Space == types.NamespaceAtom {
		return d.readAtomChild(dec, e, start)
	}

	desc, err := d.Profile.LookupName(e.Owner(), start.Name)
	if err != nil {
		if !errors.Is(err, types.ErrNotDeclared) {
			return err
		}
		return d.readUndeclared(dec, e, start, err)
	}

	el := desc.New()
	if err := dec.DecodeElement(el, &start); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, desc.Type, err)
	}
	if err := e.AddElement(el); err != nil {
		return fmt.Errorf("add %s: %w", desc.Type, err)
	}
	return nil
}

func (d *Decoder) readAtomChild(dec *xml.Decoder, e *types.Entry, start xml.StartElement) error {
	switch start.Name.Local {
	case "id", "title", "updated":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, start.Name.Local, err)
		}
		s = strings.TrimSpace(s)
		switch start.Name.Local {
		case "id":
			e.ID = s
		case "title":
			e.Title = s
		default:
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return fmt.Errorf("%w: updated: %v", ErrMalformed, err)
			}
			e.Updated = ts
		}
		return nil
	case "category":
		var c atomCategory
		if err := dec.DecodeElement(&c, &start); err != nil {
			return fmt.Errorf("%w: category: %v", ErrMalformed, err)
		}
		e.Categories().Add(types.Category{Scheme: c.Scheme, Term: c.Term, Label: c.Label})
		return nil
	default:
		// Atom fields outside the modelled subset are never extensions;
		// they are kept whatever the policy.
		return preserve(dec, e, start)
	}
}

func (d *Decoder) readUndeclared(dec *xml.Decoder, e *types.Entry, start xml.StartElement, notDeclared error) error {
	d.Metrics.undeclared(e.Owner(), d.Policy)
	switch d.Policy {
	case PolicyIgnore:
		d.logger().Debug("skipping undeclared element",
			"owner", e.Owner(),
			"namespace", start.Name.Space,
			"element", start.Name.Local)
		return dec.Skip()
	case PolicyPreserve:
		return preserve(dec, e, start)
	default:
		return notDeclared
	}
}

func preserve(dec *xml.Decoder, e *types.Entry, start xml.StartElement) error {
	var fe types.ForeignElement
	if err := dec.DecodeElement(&fe, &start); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, start.Name.Local, err)
	}
	fe.Attrs = dropNamespaceDecls(fe.Attrs)
	e.Foreign = append(e.Foreign, fe)
	return nil
}

// dropNamespaceDecls removes xmlns attributes; the encoder writes its own.
func dropNamespaceDecls(attrs []xml.Attr) []xml.Attr {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Unmarshal decodes data against p with the given policy.
func Unmarshal(data []byte, p *types.Profile, policy Policy) (*types.Entry, error) {
	d := &Decoder{Profile: p, Policy: policy}
	return d.DecodeBytes(data)
}
