package atom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

// Encoder writes entry documents.
type Encoder struct {
	Indent  string // per-level indent; empty writes a single line
	Metrics *Metrics
}

// Encode validates e against its owner's declarations and writes it to w.
// Nothing is written when validation fails.
func (en *Encoder) Encode(w io.Writer, e *types.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("encode entry %s: %w", e.ID, err)
	}

	enc := xml.NewEncoder(w)
	if en.Indent != "" {
		enc.Indent("", en.Indent)
	}

	root := xml.StartElement{Name: entryName}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := writeBase(enc, e); err != nil {
		return err
	}
	if err := writeExtensions(enc, e); err != nil {
		return err
	}
	for _, fe := range e.Foreign {
		if err := writeForeign(enc, fe); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	en.Metrics.encoded(e.Owner())
	return nil
}

func writeBase(enc *xml.Encoder, e *types.Entry) error {
	text := func(local, v string) error {
		if v == "" {
			return nil
		}
		return enc.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: local}})
	}
	if err := text("id", e.ID); err != nil {
		return err
	}
	if err := text("title", e.Title); err != nil {
		return err
	}
	if !e.Updated.IsZero() {
		if err := text("updated", e.Updated.UTC().Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	for _, c := range e.Categories().All() {
		wire := atomCategory{Scheme: c.Scheme, Term: c.Term, Label: c.Label}
		if err := enc.EncodeElement(wire, xml.StartElement{Name: xml.Name{Local: "category"}}); err != nil {
			return fmt.Errorf("category %s: %w", c, err)
		}
	}
	return nil
}

// writeExtensions writes stored elements grouped by type, in the order the
// owner declared the types.
func writeExtensions(enc *xml.Encoder, e *types.Entry) error {
	for _, d := range e.Profile().DescriptorsFor(e.Owner()) {
		for _, el := range e.Elements(d.Type) {
			if err := enc.EncodeElement(el, xml.StartElement{Name: d.Name()}); err != nil {
				return fmt.Errorf("%s: %w", d.Type, err)
			}
		}
	}
	return nil
}

func writeForeign(enc *xml.Encoder, fe types.ForeignElement) error {
	if fe.XMLName.Space == "" {
		// Undo the inherited Atom default namespace.
		fe.Attrs = append([]xml.Attr{{Name: xml.Name{Local: "xmlns"}}}, fe.Attrs...)
	}
	if err := enc.Encode(fe); err != nil {
		return fmt.Errorf("foreign element %s: %w", fe.XMLName.Local, err)
	}
	return nil
}

// Marshal encodes e as a single-line document.
func Marshal(e *types.Entry) ([]byte, error) {
	var buf bytes.Buffer
	en := &Encoder{}
	if err := en.Encode(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
