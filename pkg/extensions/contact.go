package extensions

import "github.com/mesh-intelligence/gentry/pkg/types"

// ContactEntryType owns the contact kind's extension declarations.
const ContactEntryType types.EntryType = "contact"

// ContactKindTerm is the kind term of contact category labels.
const ContactKindTerm = types.GPrefix + "contact"

// ContactCategory labels entries that carry contact extension data.
var ContactCategory = types.NewCategory(types.SchemeKind, ContactKindTerm)

// ContactKind registers the contact entry type, its category, and its
// extensions.
var ContactKind = types.Kind{
	Type:     ContactEntryType,
	Category: ContactCategory,
	Declare:  DeclareContactExtensions,
}

// DeclareContactExtensions declares the elements a contact accepts.
func DeclareContactExtensions(p *types.Profile) error {
	for _, d := range []types.Descriptor{
		EmailDescriptor(),
		ImDescriptor(),
		PhoneNumberDescriptor(),
		PostalAddressDescriptor(),
		GeoPtDescriptor(),
	} {
		if err := p.Declare(ContactEntryType, d); err != nil {
			return err
		}
	}
	return nil
}

// ContactEntry is an entry of the contact kind. It adds named accessors
// over the embedded entry's store and holds no state of its own.
type ContactEntry struct {
	*types.Entry
}

// NewContactEntry returns an empty contact labeled with ContactCategory.
// The profile must have ContactKind declared before elements are added.
func NewContactEntry(p *types.Profile) *ContactEntry {
	c := &ContactEntry{Entry: types.NewEntry(ContactEntryType, p)}
	c.Categories().Add(ContactCategory)
	return c
}

// NewContactEntryFrom returns a contact that is a shallow copy of src,
// labeled with ContactCategory. A src that already carries the label ends
// up with it twice; category lists are not deduplicated.
func NewContactEntryFrom(src *types.Entry) *ContactEntry {
	c := &ContactEntry{Entry: types.NewEntryFrom(ContactEntryType, src)}
	c.Categories().Add(ContactCategory)
	return c
}

// AsContact wraps e without copying or relabeling it. It reports false if
// e is not owned by the contact entry type.
func AsContact(e *types.Entry) (*ContactEntry, bool) {
	if e == nil || e.Owner() != ContactEntryType {
		return nil, false
	}
	return &ContactEntry{Entry: e}, true
}

// EmailAddresses returns the live list of email addresses.
func (c *ContactEntry) EmailAddresses() types.View[*Email] {
	return types.AllOf[*Email](c.Entry)
}

// AddEmailAddress appends an email address.
func (c *ContactEntry) AddEmailAddress(email *Email) error {
	return c.EmailAddresses().Append(email)
}

// ImAddresses returns the live list of instant messaging addresses.
func (c *ContactEntry) ImAddresses() types.View[*Im] {
	return types.AllOf[*Im](c.Entry)
}

// AddImAddress appends an instant messaging address.
func (c *ContactEntry) AddImAddress(im *Im) error {
	return c.ImAddresses().Append(im)
}

// PhoneNumbers returns the live list of phone numbers.
func (c *ContactEntry) PhoneNumbers() types.View[*PhoneNumber] {
	return types.AllOf[*PhoneNumber](c.Entry)
}

// AddPhoneNumber appends a phone number.
func (c *ContactEntry) AddPhoneNumber(phone *PhoneNumber) error {
	return c.PhoneNumbers().Append(phone)
}

// PostalAddresses returns the live list of postal addresses.
func (c *ContactEntry) PostalAddresses() types.View[*PostalAddress] {
	return types.AllOf[*PostalAddress](c.Entry)
}

// AddPostalAddress appends a postal address.
func (c *ContactEntry) AddPostalAddress(addr *PostalAddress) error {
	return c.PostalAddresses().Append(addr)
}

// Locations returns the live list of geographic points.
func (c *ContactEntry) Locations() types.View[*GeoPt] {
	return types.AllOf[*GeoPt](c.Entry)
}

// AddLocation appends a geographic point.
func (c *ContactEntry) AddLocation(pt *GeoPt) error {
	return c.Locations().Append(pt)
}
