package rotation

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/subvol-tools/btrsnapd/internal/snapshot"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		inv  []string
		want snapshot.Bucket
	}{
		{
			name: "empty inventory at year boundary",
			now:  at(2024, time.January, 1, 0, 0),
			want: snapshot.Year,
		},
		{
			name: "year boundary wins over full inventory",
			now:  at(2024, time.January, 1, 0, 0),
			inv: []string{
				"20240101_000000_YEAR",
				"20240101_000000_MONTH",
				"20240101_000000_DAY",
			},
			want: snapshot.Year,
		},
		{
			name: "missing year backfills regardless of time of day",
			now:  at(2024, time.March, 15, 10, 23),
			inv:  []string{"20230601_000000_YEAR"},
			want: snapshot.Year,
		},
		{
			name: "month boundary",
			now:  at(2024, time.March, 1, 0, 0),
			inv:  []string{"20240101_000000_YEAR"},
			want: snapshot.Month,
		},
		{
			name: "missing month backfills mid-month",
			now:  at(2024, time.March, 15, 10, 23),
			inv:  []string{"20240101_000000_YEAR", "20240201_000000_MONTH"},
			want: snapshot.Month,
		},
		{
			name: "day boundary",
			now:  at(2024, time.March, 15, 0, 0),
			inv:  []string{"20240101_000000_YEAR", "20240301_000000_MONTH"},
			want: snapshot.Day,
		},
		{
			name: "missing day backfills mid-day",
			now:  at(2024, time.March, 15, 10, 23),
			inv: []string{
				"20240101_000000_YEAR",
				"20240301_000000_MONTH",
				"20240314_000000_DAY",
			},
			want: snapshot.Day,
		},
		{
			name: "top of the hour with hour missing",
			now:  at(2024, time.March, 15, 10, 0),
			inv: []string{
				"20240101_000000_YEAR",
				"20240301_000000_MONTH",
				"20240315_000500_DAY",
			},
			want: snapshot.Hour,
		},
		{
			name: "mid-hour with hour missing backfills hour",
			now:  at(2024, time.March, 15, 10, 23),
			inv: []string{
				"20240101_000000_YEAR",
				"20240301_000000_MONTH",
				"20240315_000500_DAY",
				"20240315_090000_HOUR",
			},
			want: snapshot.Hour,
		},
		{
			name: "everything covered falls through to minute",
			now:  at(2024, time.March, 15, 10, 23),
			inv: []string{
				"20240101_000000_YEAR",
				"20240301_000000_MONTH",
				"20240315_000500_DAY",
				"20240315_100000_HOUR",
			},
			want: snapshot.Minute,
		},
		{
			name: "top of the hour is HOUR even when the hour is covered",
			now:  at(2024, time.March, 15, 10, 0),
			inv: []string{
				"20240101_000000_YEAR",
				"20240301_000000_MONTH",
				"20240315_000500_DAY",
				"20240315_100000_HOUR",
			},
			want: snapshot.Hour, // boundary rule fires before the backfill check
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.now, snapshot.Take(tt.inv))
			if got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.now.Format("2006-01-02 15:04"), got, tt.want)
			}
		})
	}
}

// genTime yields arbitrary wall-clock times across several decades.
func genTime() gopter.Gen {
	min := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.Local).Unix()
	max := time.Date(2060, time.December, 31, 23, 59, 59, 0, time.Local).Unix()
	return gen.Int64Range(min, max).Map(func(sec int64) time.Time {
		return time.Unix(sec, 0)
	})
}

// genInventory yields a random store listing of valid snapshot names.
func genInventory() gopter.Gen {
	entry := gopter.CombineGens(genTime(), gen.IntRange(0, len(snapshot.Buckets)-1)).
		Map(func(vals []interface{}) string {
			ts := vals[0].(time.Time)
			b := snapshot.Buckets[vals[1].(int)]
			return snapshot.NewID(ts, b).Name()
		})
	return gen.SliceOf(entry)
}

func TestClassifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("always returns one of the five buckets", prop.ForAll(
		func(now time.Time, names []string) bool {
			got := Classify(now, snapshot.Take(names))
			for _, b := range snapshot.Buckets {
				if got == b {
					return true
				}
			}
			return false
		},
		genTime(), genInventory(),
	))

	properties.Property("year boundary always classifies as YEAR", prop.ForAll(
		func(year int, names []string) bool {
			now := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
			return Classify(now, snapshot.Take(names)) == snapshot.Year
		},
		gen.IntRange(1990, 2060), genInventory(),
	))

	properties.Property("uncovered year always classifies as YEAR", prop.ForAll(
		func(now time.Time, names []string) bool {
			inv := snapshot.Take(names)
			if inv.HasStampPrefix(snapshot.Year, now.Format("2006")) {
				return true
			}
			return Classify(now, inv) == snapshot.Year
		},
		genTime(), genInventory(),
	))

	properties.TestingRun(t)
}
