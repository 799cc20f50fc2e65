// Package rotation decides which bucket a new snapshot is filed under.
package rotation

import (
	"time"

	"github.com/subvol-tools/btrsnapd/internal/snapshot"
)

// Classify picks the bucket for a snapshot taken at now, given the current
// inventory. Rules run coarsest first and the first match wins; each
// granularity fires either on an exact calendar boundary or when the
// inventory has no snapshot covering the current period. The second form
// backfills the coarse snapshot that a boundary missed while the process
// was not running. After long downtime this backfills one snapshot per
// granularity, dated now, not one per missed boundary.
func Classify(now time.Time, inv snapshot.Inventory) snapshot.Bucket {
	year := now.Format("2006")
	month := now.Format("200601")
	day := now.Format("20060102")
	hour := now.Format("20060102_15")

	switch {
	case now.Month() == time.January && now.Day() == 1 && now.Hour() == 0 && now.Minute() == 0:
		return snapshot.Year
	case !inv.HasStampPrefix(snapshot.Year, year):
		return snapshot.Year
	case now.Day() == 1 && now.Hour() == 0 && now.Minute() == 0:
		return snapshot.Month
	case !inv.HasStampPrefix(snapshot.Month, month):
		return snapshot.Month
	case now.Hour() == 0 && now.Minute() == 0:
		return snapshot.Day
	case !inv.HasStampPrefix(snapshot.Day, day):
		return snapshot.Day
	case now.Minute() == 0:
		return snapshot.Hour
	case !inv.HasStampPrefix(snapshot.Hour, hour):
		return snapshot.Hour
	default:
		return snapshot.Minute
	}
}
