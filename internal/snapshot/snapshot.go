// Package snapshot defines snapshot identifiers and the bucket inventory.
package snapshot

import (
	"strings"
	"time"
)

// Bucket is the retention granularity a snapshot belongs to.
type Bucket string

const (
	Year   Bucket = "YEAR"
	Month  Bucket = "MONTH"
	Day    Bucket = "DAY"
	Hour   Bucket = "HOUR"
	Minute Bucket = "MINUTE"
)

// Buckets lists all buckets, coarsest first.
var Buckets = []Bucket{Year, Month, Day, Hour, Minute}

func (b Bucket) valid() bool {
	switch b {
	case Year, Month, Day, Hour, Minute:
		return true
	}
	return false
}

// StampLayout is the fixed-width timestamp prefix of a snapshot name.
// Zero padding makes lexicographic order equal chronological order.
const StampLayout = "20060102_150405"

// ID identifies one snapshot: a second-precision local timestamp plus the
// bucket it was filed under.
type ID struct {
	Stamp  string
	Bucket Bucket
}

// NewID builds the id for a snapshot taken at t into bucket b.
func NewID(t time.Time, b Bucket) ID {
	return ID{Stamp: t.Format(StampLayout), Bucket: b}
}

// Name renders the id as the on-disk entry name, YYYYMMDD_HHMMSS_TYPE.
func (id ID) Name() string {
	return id.Stamp + "_" + string(id.Bucket)
}

// Parse splits a store entry name into its id. The bucket comes strictly
// from the literal suffix after the last underscore; names whose suffix is
// not a known bucket are rejected, which is how foreign entries in the
// store get skipped.
func Parse(name string) (ID, bool) {
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return ID{}, false
	}
	b := Bucket(name[i+1:])
	if !b.valid() {
		return ID{}, false
	}
	return ID{Stamp: name[:i], Bucket: b}, true
}
