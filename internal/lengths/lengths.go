// Package lengths prices linear runs such as crown, light rail, toe kick and
// scribe from the length catalog.
package lengths

import "github.com/Simplici0/cabinetry/internal/model"

// Line is one priced length item.
type Line struct {
	LengthID int64         `json:"lengthId"`
	Name     string        `json:"name"`
	Feet     float64       `json:"feet"`
	Quantity float64       `json:"quantity"`
	Total    float64       `json:"total"`
	Minutes  model.Minutes `json:"minutes"`
}

// Result is the length contribution of a section.
type Result struct {
	Lines   []Line        `json:"lines"`
	Total   float64       `json:"total"`
	Minutes model.Minutes `json:"minutes"`
	Missing []int64       `json:"missing,omitempty"`
}

// Calculate prices every length item. Miter and cutout minutes go to the shop
// service and only count when the catalog item allows them.
func Calculate(items []model.LengthItem, ctx *model.Context) Result {
	res := Result{Minutes: model.Minutes{}}
	shop := ctx.Settings.ShopServiceID

	for _, it := range items {
		cat, ok := ctx.Lengths[it.LengthID]
		if !ok {
			res.Missing = append(res.Missing, it.LengthID)
			continue
		}
		qty := it.Quantity.Float()
		feet := it.Length.Float() / 12
		line := Line{
			LengthID: cat.ID,
			Name:     cat.Name,
			Feet:     feet,
			Quantity: qty,
			Total:    model.Finite(feet * cat.PricePerFoot * qty),
			Minutes:  cat.Minutes.Scale(feet * qty),
		}
		if cat.Miter {
			line.Minutes[shop] += model.Finite(it.Miters.Float() * cat.MiterMinutes * qty)
		}
		if cat.Cutout {
			line.Minutes[shop] += model.Finite(it.Cutouts.Float() * cat.CutoutMinutes * qty)
		}
		if line.Minutes[shop] == 0 {
			delete(line.Minutes, shop)
		}

		res.Lines = append(res.Lines, line)
		res.Total += line.Total
		res.Minutes.Add(line.Minutes)
	}
	return res
}
