// Package ranker assembles ranked season statistics for teams and players:
// it reconciles the box-score and play-by-play provider feeds, applies
// shot-zone qualification gating, computes national and conference dense
// ranks for every numeric column, and narrows the result to the requested
// entities. Quad-split aggregation and roster selection live here too.
package ranker

import "github.com/courtsidelabs/gamenotes/internal/stattable"

// StatZoneMap declares which shot-location zone a rate statistic belongs
// to. A player must be flagged qualified for that zone before the stat
// participates in ranking. An empty zone means the stat needs no
// qualification beyond a present value; stats absent from this map default
// to value-presence-only eligibility.
var StatZoneMap = map[string]string{
	// global rates, no zone gating
	"and1Pct":   "",
	"and1Pct3P": "",
	"usagePct":  "",
	"tsPct":     "",
	"efgPct":    "",

	// rim / paint zones
	"rim3sFgPct":  "rim3s",
	"lane2FgPct":  "lane2",
	"atr2FgPct":   "atr2",
	"paint2FgPct": "paint2",
	"mid2FgPct":   "mid2",

	// three-point zones
	"c3FgPct":   "c3",
	"atb3FgPct": "atb3",
	"lw3FgPct":  "lw3",
	"rw3FgPct":  "rw3",
	"lc3FgPct":  "lc3",
	"rc3FgPct":  "rc3",
	"tok3FgPct": "tok3",
	"sht3FgPct": "sht3",
	"lng3FgPct": "lng3",
}

// QualFlags maps zone name → qualified for one player row.
type QualFlags map[string]bool

// ExtractQualFlags flattens a player's nested qualification record (a JSON
// array of {zoneName, isQualified} objects) into a flat zone→bool map. A
// malformed or absent record yields an empty map — every zone-scoped stat
// for that row then ranks as unqualified rather than failing the request.
func ExtractQualFlags(v any) QualFlags {
	arr, ok := v.([]any)
	if !ok {
		return QualFlags{}
	}
	flags := make(QualFlags, len(arr))
	for _, e := range arr {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		zone, ok := obj["zoneName"].(string)
		if !ok {
			continue
		}
		qualified, _ := obj["isQualified"].(bool)
		flags[zone] = qualified
	}
	return flags
}

// zoneEligibility builds the per-column eligibility gate for a ranking pass
// over player rows with the given qualification flags.
func zoneEligibility(quals []QualFlags) stattable.Eligibility {
	return func(rowIdx int, col string) bool {
		zone, scoped := StatZoneMap[col]
		if !scoped || zone == "" {
			return true
		}
		return quals[rowIdx][zone]
	}
}
