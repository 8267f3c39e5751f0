// Package accessories prices accessory lines by scaling the catalog reference
// price and time to the entered size.
package accessories

import (
	"math"

	"github.com/Simplici0/cabinetry/internal/model"
)

const defaultThickness = 0.75

// Unit derives the calculation unit of a size for a unit kind: square feet,
// cubic feet, feet, perimeter feet, or the quantity itself for counts.
func Unit(kind model.UnitKind, w, h, d, qty float64) float64 {
	switch kind {
	case model.UnitArea:
		return w * h / 144
	case model.UnitVolume:
		return w * h * d / 1728
	case model.UnitLength:
		return w / 12
	case model.UnitPerimeter:
		return 2 * (w + h) / 12
	case model.UnitCount:
		return qty
	}
	return 0
}

// RefUnit is the unit of the catalog's reference size. Counts have a
// reference unit of one.
func RefUnit(a model.Accessory) float64 {
	if a.UnitKind == model.UnitCount {
		return 1
	}
	return Unit(a.UnitKind, model.Finite(a.RefWidth), model.Finite(a.RefHeight), model.Finite(a.RefDepth), 0)
}

// Line is one priced accessory.
type Line struct {
	AccessoryID  int64         `json:"accessoryId"`
	Name         string        `json:"name"`
	Quantity     float64       `json:"quantity"`
	Unit         float64       `json:"unit"`
	RefUnit      float64       `json:"refUnit"`
	BasePrice    float64       `json:"basePrice"`
	MaterialCost float64       `json:"materialCost"`
	Total        float64       `json:"total"`
	Minutes      model.Minutes `json:"minutes"`
}

// Result is the accessory contribution of a section.
type Result struct {
	Lines   []Line        `json:"lines"`
	Total   float64       `json:"total"`
	Minutes model.Minutes `json:"minutes"`

	// Missing lists accessory ids not found in the catalog.
	Missing []int64 `json:"missing,omitempty"`
}

// Calculate prices every accessory line. Material-matched accessories add the
// cost of the room's face material and take its finish multipliers.
func Calculate(items []model.AccessoryItem, faceMaterial model.Material, ctx *model.Context) Result {
	res := Result{Minutes: model.Minutes{}}
	for _, it := range items {
		acc, ok := ctx.Accessories[it.AccessoryID]
		if !ok {
			res.Missing = append(res.Missing, it.AccessoryID)
			continue
		}
		line := price(it, acc, faceMaterial, ctx)
		res.Lines = append(res.Lines, line)
		res.Total += line.Total
		res.Minutes.Add(line.Minutes)
	}
	return res
}

func price(it model.AccessoryItem, acc model.Accessory, mat model.Material, ctx *model.Context) Line {
	w, h, d := it.Width.Float(), it.Height.Float(), it.Depth.Float()
	qty := it.Quantity.Float()
	line := Line{
		AccessoryID: acc.ID,
		Name:        acc.Name,
		Quantity:    qty,
		Unit:        Unit(acc.UnitKind, w, h, d, qty),
		RefUnit:     RefUnit(acc),
	}

	// Count accessories carry the quantity in their unit already.
	multiplier := qty
	if acc.UnitKind == model.UnitCount {
		multiplier = 1
	}

	if line.RefUnit > 0 && acc.RefPrice > 0 {
		line.BasePrice = line.Unit / line.RefUnit * acc.RefPrice * multiplier
	} else {
		line.BasePrice = model.Finite(acc.UnitPrice) * qty
	}
	line.BasePrice = model.Finite(line.BasePrice)

	extra := 1.0
	if acc.UnitKind != model.UnitCount && line.RefUnit > 0 {
		extra += math.Max(0, line.Unit-line.RefUnit)
	}
	line.Minutes = acc.Minutes.Scale(qty * extra)

	if acc.MatchesRoomMaterial {
		line.MaterialCost = materialCost(w, h, mat, ctx.Settings.AccessoryWasteFactor) * qty
		line.Minutes = line.Minutes.Multiply(ctx.FinishMultipliers(mat))
	}

	line.Total = model.Finite(line.BasePrice + line.MaterialCost)
	return line
}

// materialCost is the cost of one w by h piece of mat, by the board foot for
// hardwood and by sheet area otherwise.
func materialCost(w, h float64, mat model.Material, waste float64) float64 {
	if waste <= 0 {
		waste = 1
	}
	if mat.Kind == model.MaterialHardwood {
		t := model.Finite(mat.Thickness)
		if t <= 0 {
			t = defaultThickness
		}
		return w * h * t / 144 * model.Finite(mat.BoardFootPrice) * waste
	}
	area := mat.SheetArea()
	if area <= 0 {
		return 0
	}
	return model.Finite(w * h / area * mat.SheetPrice * waste)
}
