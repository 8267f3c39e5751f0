// Package hardware counts hinges, slides and pulls from cabinet summaries and
// prices and times them from the selected catalog items.
package hardware

import (
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/resolve"
)

// Counts are section-wide hardware counts, cabinet quantities applied.
type Counts struct {
	Hinges         float64 `json:"hinges"`
	Slides         float64 `json:"slides"`
	DoorPulls      float64 `json:"doorPulls"`
	DrawerPulls    float64 `json:"drawerPulls"`
	AppliancePulls float64 `json:"appliancePulls"`
	ShelfHoles     float64 `json:"shelfHoles"`
}

// Pulls returns every pull regardless of kind.
func (c Counts) Pulls() float64 {
	return c.DoorPulls + c.DrawerPulls + c.AppliancePulls
}

// Count sums the hardware summaries of every cabinet.
func Count(cabinets []model.CabinetItem) Counts {
	var c Counts
	for _, cab := range cabinets {
		qty := cab.Quantity.Float()
		if qty <= 0 {
			continue
		}
		h := cab.Hardware
		c.Hinges += h.Hinges.Float() * qty
		c.Slides += h.Slides.Float() * qty
		c.DoorPulls += h.DoorPulls.Float() * qty
		c.DrawerPulls += h.DrawerPulls.Float() * qty
		c.AppliancePulls += h.AppliancePulls.Float() * qty
		c.ShelfHoles += h.ShelfHoles.Float() * qty
	}
	return c
}

// Line is one priced hardware selection.
type Line struct {
	Category  model.Category `json:"category"`
	ItemID    int64          `json:"itemId"`
	Name      string         `json:"name"`
	Count     float64        `json:"count"`
	UnitPrice float64        `json:"unitPrice"`
	Total     float64        `json:"total"`
	Minutes   model.Minutes  `json:"minutes"`
}

// Result is the hardware contribution of a section.
type Result struct {
	Counts     Counts                     `json:"counts"`
	Categories map[model.Category]float64 `json:"categories"`
	Lines      []Line                     `json:"lines"`
	Minutes    model.Minutes              `json:"minutes"`

	// Missing lists selections that were needed but not found in the catalog.
	Missing []model.Category `json:"missing,omitempty"`
}

// Calculate prices the counted hardware against the resolved selections. Time
// is the catalog's per-unit minutes times the count.
func Calculate(cabinets []model.CabinetItem, eff resolve.Effective, ctx *model.Context) Result {
	counts := Count(cabinets)
	res := Result{
		Counts:     counts,
		Categories: map[model.Category]float64{},
		Minutes:    model.Minutes{},
	}

	lines := []struct {
		cat     model.Category
		catalog map[int64]model.Hardware
		id      int64
		count   float64
	}{
		{model.CatHinges, ctx.Hinges, eff.HingeID, counts.Hinges},
		{model.CatSlides, ctx.Slides, eff.SlideID, counts.Slides},
		{model.CatPulls, ctx.Pulls, eff.DoorPullID, counts.DoorPulls},
		{model.CatPulls, ctx.Pulls, eff.DrawerPullID, counts.DrawerPulls},
		{model.CatPulls, ctx.Pulls, eff.AppliancePullID, counts.AppliancePulls},
	}
	for _, l := range lines {
		if l.count <= 0 {
			continue
		}
		item, ok := l.catalog[l.id]
		if !ok {
			res.Missing = append(res.Missing, l.cat)
			continue
		}
		line := Line{
			Category:  l.cat,
			ItemID:    item.ID,
			Name:      item.Name,
			Count:     l.count,
			UnitPrice: model.Finite(item.Price),
			Total:     model.Finite(item.Price * l.count),
			Minutes:   item.Minutes.Scale(l.count),
		}
		res.Lines = append(res.Lines, line)
		res.Categories[l.cat] += line.Total
		res.Minutes.Add(line.Minutes)
	}
	return res
}
