// Package detect decides whether the source subvolume changed between checks.
package detect

// Token is an opaque marker of source state, typically the btrfs generation
// counter rendered as a string. Tokens are only ever compared for equality.
type Token string

// Unknown is the token value before the first observation.
const Unknown Token = ""

// Advance compares the previously recorded token against the newly observed
// one and returns the token to carry forward. The first observation after
// process start adopts the token without reporting a change, so a restart
// never snapshots an unchanged volume.
func Advance(prev, curr Token) (changed bool, next Token) {
	if prev == Unknown {
		return false, curr
	}
	return curr != prev, curr
}
