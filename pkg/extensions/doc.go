// Package extensions provides extension elements in the g namespace and the
// contact entry kind built on them.
//
// Each element type exposes a <Name>Descriptor function returning its
// default declaration, so kinds can declare it without an instance.
// DeclareAll registers every kind in this package on a profile.
package extensions
