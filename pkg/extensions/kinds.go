package extensions

import "github.com/mesh-intelligence/gentry/pkg/types"

// Builtin lists the kinds this package provides, generic entries first.
var Builtin = []types.Kind{
	types.GenericEntry,
	ContactKind,
}

// DeclareAll declares every builtin kind on p.
func DeclareAll(p *types.Profile) error {
	for _, k := range Builtin {
		if err := p.DeclareKind(k); err != nil {
			return err
		}
	}
	return nil
}

// NewProfile returns a sealed profile with every builtin kind declared.
func NewProfile() (*types.Profile, error) {
	p := types.NewProfile()
	if err := DeclareAll(p); err != nil {
		return nil, err
	}
	p.Seal()
	return p, nil
}
