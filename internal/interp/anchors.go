package interp

import (
	"sort"

	"github.com/Simplici0/cabinetry/internal/model"
)

// Eligible filters anchors for a cabinet style. Anchors tagged with the style
// and anchors tagged model.AnyStyle are eligible. Where both exist at the same
// size their minutes merge per service and the style-specific value wins. The
// result is sorted by size.
func Eligible(anchors []model.TimeAnchor, styleID int64) []model.TimeAnchor {
	bySize := make(map[float64]model.TimeAnchor, len(anchors))
	for _, a := range anchors {
		if a.StyleID != model.AnyStyle && a.StyleID != styleID {
			continue
		}
		size := model.Finite(a.Size)
		prev, seen := bySize[size]
		if !seen {
			bySize[size] = a
			continue
		}
		styled, generic := a, prev
		if a.StyleID == model.AnyStyle {
			styled, generic = prev, a
		}
		merged := styled
		merged.Minutes = make(model.Minutes, len(styled.Minutes)+len(generic.Minutes))
		for id, m := range generic.Minutes {
			merged.Minutes[id] = m
		}
		for id, m := range styled.Minutes {
			merged.Minutes[id] = m
		}
		bySize[size] = merged
	}

	out := make([]model.TimeAnchor, 0, len(bySize))
	for _, a := range bySize {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}

// AnchorMinutes interpolates per-service minutes at size over the anchors
// eligible for styleID. Curves are clamped at both ends. A service missing from
// an anchor counts as zero minutes at that anchor.
func AnchorMinutes(anchors []model.TimeAnchor, styleID int64, size float64) model.Minutes {
	eligible := Eligible(anchors, styleID)
	out := model.Minutes{}
	if len(eligible) == 0 {
		return out
	}

	services := map[int64]struct{}{}
	for _, a := range eligible {
		for id := range a.Minutes {
			services[id] = struct{}{}
		}
	}

	points := make([]Point, len(eligible))
	for id := range services {
		for i, a := range eligible {
			points[i] = Point{X: a.Size, Y: a.Minutes[id]}
		}
		if v := Interpolate(points, size); v != 0 {
			out[id] = v
		}
	}
	return out
}
