package snapshot

import "sort"

// Inventory groups the snapshots of a store by bucket, oldest first within
// each bucket. It is always rebuilt from a live listing and never cached, so
// entries created or deleted outside the process are seen immediately.
type Inventory map[Bucket][]ID

// Take builds an inventory from a raw store listing. Names that do not end
// in a known bucket suffix are ignored.
func Take(names []string) Inventory {
	inv := Inventory{}
	for _, name := range names {
		id, ok := Parse(name)
		if !ok {
			continue
		}
		inv[id.Bucket] = append(inv[id.Bucket], id)
	}
	for _, ids := range inv {
		sort.Slice(ids, func(i, j int) bool { return ids[i].Name() < ids[j].Name() })
	}
	return inv
}

// HasStampPrefix reports whether any snapshot in bucket b has a timestamp
// starting with prefix.
func (inv Inventory) HasStampPrefix(b Bucket, prefix string) bool {
	for _, id := range inv[b] {
		if len(id.Stamp) >= len(prefix) && id.Stamp[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
