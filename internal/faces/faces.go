package faces

import (
	"github.com/Simplici0/cabinetry/internal/interp"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/resolve"
	"github.com/Simplici0/cabinetry/internal/sheets"
)

// CategoryTotal is the count, area (square feet) and price of one face category.
type CategoryTotal struct {
	Count float64 `json:"count"`
	Area  float64 `json:"area"`
	Price float64 `json:"price"`
}

// Line is one priced face.
type Line struct {
	Face
	UnitPrice float64       `json:"unitPrice"`
	BoardFeet float64       `json:"boardFeet,omitempty"`
	Minutes   model.Minutes `json:"minutes"`
}

// Result is the face contribution of a section.
type Result struct {
	Categories map[model.Category]CategoryTotal `json:"categories"`
	Lines      []Line                           `json:"lines"`
	Minutes    model.Minutes                    `json:"minutes"`
	Sheets     sheets.Result                    `json:"sheets"`
	BoardFeet  float64                          `json:"boardFeet"`

	// Unpriced counts faces whose style has no pricer.
	Unpriced int `json:"unpriced"`
}

var styleOrder = []model.FaceStyle{model.StyleSlabSheet, model.StyleFivePiece, model.StyleSlabHardwood}

// Calculate collects, prices and times every face of the cabinets. Groups are
// built per call and never shared.
func Calculate(cabinets []model.CabinetItem, eff resolve.Effective, mold model.Molding, ctx *model.Context) Result {
	res := Result{Categories: map[model.Category]CategoryTotal{}, Minutes: model.Minutes{}}
	faces := Collect(cabinets, eff)

	material := ctx.FaceMaterials[eff.FaceMaterialID]
	multipliers := ctx.FinishMultipliers(material)
	in := input{material: material, molding: mold, settings: ctx.Settings}

	groups := map[model.FaceStyle][]int{}
	for i, f := range faces {
		groups[f.Style] = append(groups[f.Style], i)
	}

	res.Lines = make([]Line, len(faces))
	for i, f := range faces {
		res.Lines[i].Face = f
	}

	for _, style := range styleOrder {
		idx := groups[style]
		delete(groups, style)
		if len(idx) == 0 {
			continue
		}
		group := make([]Face, len(idx))
		for j, i := range idx {
			group[j] = faces[i]
		}
		p, _ := pricerFor(style)
		out := p.price(group, in)
		for cat, v := range out.byCategory {
			ct := res.Categories[cat]
			ct.Price += v
			res.Categories[cat] = ct
		}
		for j, i := range idx {
			res.Lines[i].UnitPrice = out.unit[j]
			res.Lines[i].BoardFeet = out.boardFeet[j]
			if style == model.StyleFivePiece {
				res.BoardFeet += out.boardFeet[j] * faces[i].Quantity
			}
		}
		if style == model.StyleSlabSheet {
			res.Sheets = out.sheets
		}
	}
	for _, idx := range groups {
		res.Unpriced += len(idx)
	}

	for i, f := range faces {
		ct := res.Categories[f.Category]
		if f.Counted {
			ct.Count += f.Quantity
		}
		ct.Area += f.Area() / 144 * f.Quantity
		res.Categories[f.Category] = ct

		m := interp.AnchorMinutes(ctx.Anchors[f.Kind], f.StyleID, f.Area()/144).
			Scale(f.Quantity).
			Multiply(multipliers)
		res.Lines[i].Minutes = m
		res.Minutes.Add(m)
	}

	res.Minutes.Add(cabinetExtras(cabinets, eff, ctx).Multiply(multipliers))
	return res
}

// cabinetExtras adds the fixed-anchor labor of hood cabinets (by volume in
// cubic feet) and end or appliance panels (by root face area in square feet).
func cabinetExtras(cabinets []model.CabinetItem, eff resolve.Effective, ctx *model.Context) model.Minutes {
	out := model.Minutes{}
	for _, cab := range cabinets {
		qty := cab.Quantity.Float()
		if qty <= 0 {
			continue
		}
		styleID := eff.ForCabinet(cab).CabinetStyleID
		w, h, d := cab.Width.Float(), cab.Height.Float(), cab.Depth.Float()

		switch cab.Type {
		case model.CabinetHood:
			out.Add(interp.AnchorMinutes(ctx.Anchors[model.PartKindHood], styleID, w*h*d/1728).Scale(qty))
		case model.CabinetEndPanel, model.CabinetAppliancePanel:
			out.Add(interp.AnchorMinutes(ctx.Anchors[model.PartKindEndPanel], styleID, w*h/144).Scale(qty))
		}
	}
	return out
}
