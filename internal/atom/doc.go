// Package atom reads and writes entries as Atom <entry> documents.
//
// The decoder picks the entry's kind from its kind-scheme category, then
// routes every namespace-qualified child through the profile: declared
// extensions are decoded into their typed element and added to the entry,
// undeclared ones are handled by the caller's Policy. Atom elements other
// than id, title, updated and category are kept verbatim.
//
// The encoder validates the entry against its owner's declarations and
// writes extensions in declaration order.
package atom
