package types

import (
	"encoding/xml"
	"fmt"
	"reflect"
)

// Element is an extension element instance stored on an entry.
//
// ElementType must not dereference its receiver: the store calls it on the
// zero value of the concrete type to find the type tag without an instance.
// Implementations are pointer types that round-trip through encoding/xml.
type Element interface {
	ElementType() ElementType
}

// ForeignElement holds an element the profile does not know, kept verbatim
// so it can be written back unchanged.
type ForeignElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	InnerXML []byte     `xml:",innerxml"`
}

// isNilElement reports whether el is nil or a typed nil, such as a nil
// *Email passed through the Element interface.
func isNilElement(el Element) bool {
	if el == nil {
		return true
	}
	switch v := reflect.ValueOf(el); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// checkElementType rejects el when its Go type is not the one d constructs.
// Views assert stored elements to that type.
func checkElementType(d Descriptor, el Element) error {
	want := reflect.TypeOf(d.New())
	if got := reflect.TypeOf(el); got != want {
		return fmt.Errorf("%w: %s is declared as %s, got %s", ErrInvalidElement, d.Type, want, got)
	}
	return nil
}
