package model

import (
	"fmt"
	"strings"
)

// Policy identifies one of the eviction policies the engine can run.
type Policy uint32

const (
	PolicyMRU Policy = iota
	PolicyFIFO
	PolicyLRU
	PolicyS3FIFO
	PolicyLHDSimple

	// NumPolicies is the size of every policy-indexed table.
	NumPolicies = 5
)

var policyNames = [NumPolicies]string{"mru", "fifo", "lru", "s3fifo", "lhd_simple"}

// Policies returns all policies in index order.
func Policies() [NumPolicies]Policy {
	return [NumPolicies]Policy{PolicyMRU, PolicyFIFO, PolicyLRU, PolicyS3FIFO, PolicyLHDSimple}
}

func (p Policy) Valid() bool { return p < NumPolicies }

func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("policy(%d)", uint32(p))
	}
	return policyNames[p]
}

// ParsePolicy accepts the names produced by String (case-insensitive, "-" and "_" are equal).
func ParsePolicy(s string) (Policy, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range policyNames {
		if name == norm {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q", s)
}

func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown policy %d", uint32(p))
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
