// Package faces collects the visible faces of a section's cabinets, prices
// them per finish style and times them against the part-kind anchor sets.
package faces

import (
	"math"

	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/resolve"
)

// Face is one face line: a visible face, a combined filler or an end-panel
// nosing piece. Dimensions are inches; Quantity already includes the
// cabinet quantity.
type Face struct {
	CabinetID int64           `json:"cabinetId"`
	Category  model.Category  `json:"category"`
	Kind      model.PartKind  `json:"kind"`
	Style     model.FaceStyle `json:"style"`
	StyleID   int64           `json:"styleId"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Quantity  float64         `json:"quantity"`
	Counted   bool            `json:"counted"`
}

// Area returns the area of one face in square inches.
func (f Face) Area() float64 { return f.Width * f.Height }

// Collect walks every cabinet's face tree and box parts list. Open, reveal and
// container nodes are not faces, but container children are walked.
func Collect(cabinets []model.CabinetItem, eff resolve.Effective) []Face {
	var out []Face
	for _, cab := range cabinets {
		qty := cab.Quantity.Float()
		if qty <= 0 {
			continue
		}
		sel := eff.ForCabinet(cab)
		base := Face{CabinetID: cab.ID, StyleID: sel.CabinetStyleID, Quantity: qty, Counted: true}

		if cab.Faces != nil {
			out = walk(out, *cab.Faces, base, sel)
		}
		out = appendSynthetic(out, cab, base, sel)
	}
	return out
}

func walk(out []Face, n model.FaceNode, base Face, sel resolve.Cabinet) []Face {
	f := base
	f.Width, f.Height = n.Width.Float(), n.Height.Float()
	switch n.Type {
	case model.FaceDoor:
		f.Category, f.Kind, f.Style = model.CatDoor, model.PartKindDoor, sel.DoorStyle
	case model.FaceDrawerFront:
		f.Category, f.Kind, f.Style = model.CatDrawerFront, model.PartKindDrawerFront, sel.DrawerFrontStyle
	case model.FaceFalseFront:
		f.Category, f.Kind, f.Style = model.CatFalseFront, model.PartKindFalseFront, sel.DrawerFrontStyle
	case model.FacePanel:
		f.Category, f.Kind, f.Style = model.CatPanel, model.PartKindPanel, sel.DoorStyle
	default:
		for _, c := range n.Children {
			out = walk(out, c, base, sel)
		}
		return out
	}
	if f.Width > 0 && f.Height > 0 {
		out = append(out, f)
	}
	return out
}

// appendSynthetic adds the combined filler panel (slab-sheet doors only) and
// the end-panel nosing pieces. Nosing is priced and timed as panel but never
// counted as a visible face.
func appendSynthetic(out []Face, cab model.CabinetItem, base Face, sel resolve.Cabinet) []Face {
	filler := base
	filler.Category, filler.Kind, filler.Style = model.CatOtherFace, model.PartKindPanel, model.StyleSlabSheet

	for _, p := range cab.BoxParts {
		w, h, n := p.Width.Float(), p.Height.Float(), p.Quantity.Float()
		if w <= 0 || h <= 0 || n <= 0 {
			continue
		}
		switch p.Type {
		case model.PartFiller:
			filler.Width += w * n
			filler.Height = math.Max(filler.Height, h)
		case model.PartEndPanelNosing:
			f := base
			f.Category, f.Kind, f.Style = model.CatPanel, model.PartKindPanel, sel.DoorStyle
			f.Width, f.Height = w, h
			f.Quantity = base.Quantity * n
			f.Counted = false
			out = append(out, f)
		}
	}

	if sel.DoorStyle == model.StyleSlabSheet && filler.Width > 0 {
		out = append(out, filler)
	}
	return out
}
