package merge

import (
	"github.com/openrocket/motor-database/internal/curve"
	"github.com/openrocket/motor-database/internal/store"
)

// sourceRank orders curve provenance for picking a motor's preferred
// curve. Certification data beats manufacturer data beats user uploads.
func sourceRank(source string) int {
	switch curve.Source(source) {
	case curve.SourceCert:
		return 0
	case curve.SourceMfr:
		return 1
	default:
		return 2
	}
}

// PreferredCurve picks the curve a motor's derived fields come from:
// best source rank, with the highest curve id (the most recently written
// row) breaking ties. Returns nil for an empty list.
func PreferredCurve(curves []*store.Curve) *store.Curve {
	var best *store.Curve
	for _, c := range curves {
		if best == nil {
			best = c
			continue
		}
		br, cr := sourceRank(best.Source), sourceRank(c.Source)
		if cr < br || (cr == br && c.ID > best.ID) {
			best = c
		}
	}
	return best
}
