package merge

// Policy determines which side wins when a matched entity pair (or a
// deduplicated transition pair) carries the same property key with
// different values. Key sets are always unioned regardless of policy.
type Policy string

const (
	// PolicyPrimaryWins keeps the primary graph's value on conflicting
	// property keys. This is the default: the primary graph's identity
	// takes precedence throughout the merge.
	PolicyPrimaryWins Policy = "primary-wins"

	// PolicySecondaryWins lets the secondary graph's value overwrite the
	// primary's on conflicting property keys.
	PolicySecondaryWins Policy = "secondary-wins"
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}

// valid reports whether the policy is a known value.
func (p Policy) valid() bool {
	return p == PolicyPrimaryWins || p == PolicySecondaryWins
}

// mergeProperties unions src into dst under the given policy. dst must be
// an owned (cloned) map; src is never mutated.
func mergeProperties(dst, src map[string]any, policy Policy) {
	for key, value := range src {
		if _, exists := dst[key]; exists && policy == PolicyPrimaryWins {
			continue
		}
		dst[key] = value
	}
}
