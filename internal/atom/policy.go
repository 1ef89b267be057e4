package atom

import "fmt"

// Policy decides what the decoder does with an element the entry's owner
// did not declare.
type Policy int

// Policies. The zero value rejects undeclared elements.
const (
	PolicyError    Policy = iota // fail with *types.NotDeclaredError
	PolicyIgnore                 // skip the element
	PolicyPreserve               // keep it verbatim in Entry.Foreign
)

var policyNames = map[Policy]string{
	PolicyError:    "error",
	PolicyIgnore:   "ignore",
	PolicyPreserve: "preserve",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy parses a policy name as written by String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown undeclared-element policy %q (want error, ignore or preserve)", s)
}
