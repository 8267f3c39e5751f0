package pricing

import (
	"github.com/Simplici0/cabinetry/internal/drawers"
	"github.com/Simplici0/cabinetry/internal/hardware"
	"github.com/Simplici0/cabinetry/internal/interp"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/resolve"
	"github.com/Simplici0/cabinetry/internal/sheets"
)

// BoxResult is the cabinet box contribution: sheet goods for the box parts,
// section drilling, and box labor from the box anchor set.
type BoxResult struct {
	Parts   []sheets.Part `json:"parts"`
	Sheets  sheets.Result `json:"sheets"`
	Minutes model.Minutes `json:"minutes"`
}

// faceParts are box parts priced as faces.
func faceParts(t model.BoxPartType) bool {
	return t == model.PartFiller || t == model.PartEndPanelNosing
}

func calculateBoxes(cabinets []model.CabinetItem, eff resolve.Effective, counts hardware.Counts, ctx *model.Context) BoxResult {
	res := BoxResult{Minutes: model.Minutes{}}
	material := ctx.BoxMaterials[eff.BoxMaterialID]
	multipliers := ctx.FinishMultipliers(material)

	banding := 0.0
	for _, cab := range cabinets {
		qty := cab.Quantity.Float()
		if qty <= 0 {
			continue
		}
		area := 0.0
		for _, p := range cab.BoxParts {
			if faceParts(p.Type) {
				continue
			}
			w, h, n := p.Width.Float(), p.Height.Float(), p.Quantity.Float()
			if w <= 0 || h <= 0 || n <= 0 {
				continue
			}
			res.Parts = append(res.Parts, sheets.Part{
				Label:    string(p.Type),
				Category: model.CatBox,
				Width:    w,
				Height:   h,
				Quantity: sheets.Pieces(n * qty),
			})
			area += w * h * n
		}
		banding += cab.BandingLength.Float() * qty

		if area > 0 {
			styleID := eff.ForCabinet(cab).CabinetStyleID
			m := interp.AnchorMinutes(ctx.Anchors[model.PartKindBox], styleID, area/144)
			res.Minutes.Add(m.Scale(qty).Multiply(multipliers))
		}
	}

	res.Sheets = sheets.Cost(sheets.Request{
		Role:         sheets.RoleBox,
		Category:     model.CatBox,
		Material:     material,
		Parts:        res.Parts,
		ExtraBanding: banding,
		Drilling: sheets.Drilling{
			HingeBores: counts.Hinges,
			Slides:     counts.Slides,
			ShelfHoles: counts.ShelfHoles,
		},
	}, ctx.Settings)
	return res
}

// DrawerResult holds the two separate drawer invocations.
type DrawerResult struct {
	Boxes    drawers.Result `json:"boxes"`
	Rollouts drawers.Result `json:"rollouts"`
}

func calculateDrawers(cabinets []model.CabinetItem, eff resolve.Effective, ctx *model.Context) DrawerResult {
	var boxes []drawers.Box
	for _, cab := range cabinets {
		qty := cab.Quantity.Float()
		if qty <= 0 {
			continue
		}
		faceFrame := ctx.CabinetStyles[eff.ForCabinet(cab).CabinetStyleID].FaceFrame
		for _, d := range cab.DrawerBoxes {
			boxes = append(boxes, drawers.Box{
				Width:       d.Width.Float(),
				Height:      d.Height.Float(),
				Depth:       d.Depth.Float(),
				Quantity:    d.Quantity.Float() * qty,
				IsRollout:   d.IsRollout,
				IsFaceFrame: faceFrame,
			})
		}
	}

	material := ctx.DrawerBoxMaterials[eff.DrawerBoxMaterialID]
	standard, rollouts := drawers.Split(boxes)
	return DrawerResult{
		Boxes:    drawers.Price(standard, material, ctx.Settings),
		Rollouts: drawers.Price(rollouts, material, ctx.Settings),
	}
}
