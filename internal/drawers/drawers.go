// Package drawers prices drawer boxes and roll-out trays by the sheet area
// they consume.
package drawers

import (
	"math"

	"github.com/Simplici0/cabinetry/internal/model"
)

// Box is one drawer box line. Dimensions are inches.
type Box struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Depth       float64 `json:"depth"`
	Quantity    float64 `json:"quantity"`
	IsRollout   bool    `json:"isRollout"`
	IsFaceFrame bool    `json:"isFaceFrame"`
}

// Result is the price of one invocation.
type Result struct {
	Count        float64 `json:"count"`
	Area         float64 `json:"area"`
	SheetsUsed   float64 `json:"sheetsUsed"`
	MaterialCost float64 `json:"materialCost"`
	LaborCost    float64 `json:"laborCost"`
	Tax          float64 `json:"tax"`
	TotalCost    float64 `json:"totalCost"`
}

// Split separates standard drawer boxes from roll-outs. They are priced by
// separate Price calls.
func Split(boxes []Box) (standard, rollouts []Box) {
	for _, b := range boxes {
		if b.IsRollout {
			rollouts = append(rollouts, b)
		} else {
			standard = append(standard, b)
		}
	}
	return standard, rollouts
}

// Price prices boxes cut from mat. Sheet consumption is rounded up to the
// configured increment once, on the aggregate area. A material without sheet
// dimensions prices to zero.
func Price(boxes []Box, mat model.Material, s model.Settings) Result {
	sheetArea := mat.SheetArea()
	if sheetArea <= 0 {
		return Result{}
	}

	var res Result
	for _, b := range boxes {
		w, h, d := model.Finite(b.Width), model.Finite(b.Height), model.Finite(b.Depth)
		qty := model.Finite(b.Quantity)
		if qty <= 0 {
			continue
		}
		res.Count += qty
		res.Area += (w*d + 2*h*d + 2*w*h) * s.DrawerWasteFactor * qty
		res.LaborCost += laborPerBox(b, s) * qty
	}

	res.SheetsUsed = roundUp(res.Area/sheetArea, s.DrawerSheetIncrement)
	res.MaterialCost = res.SheetsUsed * model.Finite(mat.SheetPrice)

	subtotal := res.MaterialCost + res.LaborCost
	res.Tax = subtotal * s.TaxRate
	res.TotalCost = model.Finite(subtotal + res.Tax)
	return res
}

func laborPerBox(b Box, s model.Settings) float64 {
	base := s.DrawerBaseLabor
	if b.Width > 36 || b.Height > 8 {
		base *= 1.05
	}
	clip := s.ClipCostFrameless
	if b.IsFaceFrame {
		clip = s.ClipCostFaceFrame
	}
	cost := base + s.DrawerNotchCost + clip
	if b.IsRollout {
		cost += s.RolloutScoopCost
	}
	return cost
}

// roundUp rounds v up to a multiple of inc. A non-positive increment leaves v
// unchanged.
func roundUp(v, inc float64) float64 {
	if inc <= 0 || v <= 0 {
		return math.Max(v, 0)
	}
	return math.Ceil(v/inc-1e-9) * inc
}
