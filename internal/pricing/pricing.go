// Package pricing assembles a section estimate: it runs every category engine,
// merges labor hours per service, applies inclusion toggles, markups and
// customer-facing rounding.
package pricing

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Simplici0/cabinetry/internal/accessories"
	"github.com/Simplici0/cabinetry/internal/faces"
	"github.com/Simplici0/cabinetry/internal/hardware"
	"github.com/Simplici0/cabinetry/internal/lengths"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/resolve"
)

// CategoryLine is the count and price of one cost category. Excluded
// categories are still reported for display.
type CategoryLine struct {
	Category model.Category `json:"category"`
	Count    float64        `json:"count"`
	Price    float64        `json:"price"`
	Included bool           `json:"included"`
}

// LaborLine is the hours and cost of one labor service.
type LaborLine struct {
	ServiceID int64   `json:"serviceId"`
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
	Rate      float64 `json:"rate"`
	Cost      float64 `json:"cost"`
	Included  bool    `json:"included"`
}

// OtherLine is one free-form item.
type OtherLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

// Breakdown carries every category engine's detailed output.
type Breakdown struct {
	Boxes       BoxResult          `json:"boxes"`
	Faces       faces.Result       `json:"faces"`
	Drawers     DrawerResult       `json:"drawers"`
	Hardware    hardware.Result    `json:"hardware"`
	Accessories accessories.Result `json:"accessories"`
	Lengths     lengths.Result     `json:"lengths"`
	Others      []OtherLine        `json:"others"`
}

// Totals are the assembled section totals. UnitPrice is the rounded price of
// one section; DisplayPrice is what a quote shows.
type Totals struct {
	PartsTotal   float64 `json:"partsTotal"`
	LaborTotal   float64 `json:"laborTotal"`
	Subtotal     float64 `json:"subtotal"`
	Profit       float64 `json:"profit"`
	Commission   float64 `json:"commission"`
	Discount     float64 `json:"discount"`
	Amount       float64 `json:"amount"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     float64 `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
	DisplayPrice float64 `json:"displayPrice"`
}

// Result is a section calculation. It is built fresh per call.
type Result struct {
	SectionID      int64             `json:"sectionId"`
	Effective      resolve.Effective `json:"effective"`
	Categories     []CategoryLine    `json:"categories"`
	HoursByService model.Hours       `json:"hoursByService"`
	Labor          []LaborLine       `json:"labor"`
	Breakdown      Breakdown         `json:"breakdown"`
	Totals         Totals            `json:"totals"`

	PartsIncluded    model.PartsIncluded `json:"partsIncluded,omitempty"`
	ServicesIncluded map[int64]bool      `json:"servicesIncluded,omitempty"`
	AddHours         map[int64]float64   `json:"addHours,omitempty"`
}

// Category returns the line for c.
func (r Result) Category(c model.Category) CategoryLine {
	for _, l := range r.Categories {
		if l.Category == c {
			return l
		}
	}
	return CategoryLine{Category: c}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger data-quality degradations are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine runs section calculations. It holds no calculation state and is safe
// for concurrent use.
type Engine struct {
	log *zap.Logger
}

// New returns an Engine that logs nowhere unless WithLogger is given.
func New(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculate runs a section through a default Engine.
func Calculate(section model.Section, ctx model.Context) Result {
	return New().Calculate(section, ctx)
}

// Calculate computes the full estimate of a section. It never fails: missing
// reference data zeroes the affected contribution.
func (e *Engine) Calculate(section model.Section, ctx model.Context) Result {
	log := e.log.With(zap.Int64("section_id", section.ID))
	eff := resolve.Defaults(section.Overrides, ctx.Project, ctx.Defaults)

	res := Result{
		SectionID:        section.ID,
		Effective:        eff,
		PartsIncluded:    section.PartsIncluded,
		ServicesIncluded: section.ServicesIncluded,
	}

	b := &res.Breakdown
	b.Hardware = hardware.Calculate(section.Cabinets, eff, &ctx)
	b.Boxes = calculateBoxes(section.Cabinets, eff, b.Hardware.Counts, &ctx)
	b.Faces = faces.Calculate(section.Cabinets, eff, section.Molding, &ctx)
	b.Drawers = calculateDrawers(section.Cabinets, eff, &ctx)
	faceMaterial := ctx.FaceMaterials[eff.FaceMaterialID]
	b.Accessories = accessories.Calculate(section.Accessories, faceMaterial, &ctx)
	b.Lengths = lengths.Calculate(section.Lengths, &ctx)
	b.Others = others(section.Others)

	reportGaps(log, section, eff, &ctx, b)

	res.Categories = categories(b, section.PartsIncluded)
	for _, l := range res.Categories {
		if l.Included {
			res.Totals.PartsTotal += l.Price
		}
	}

	res.HoursByService = hours(section, b, ctx.Settings)
	if len(section.AddHours) > 0 {
		res.AddHours = make(map[int64]float64, len(section.AddHours))
		for id, h := range section.AddHours {
			res.AddHours[id] = h.Float()
		}
	}
	res.Labor = labor(res.HoursByService, section, &ctx, log)
	for _, l := range res.Labor {
		if l.Included {
			res.Totals.LaborTotal += l.Cost
		}
	}

	res.Totals = finalize(res.Totals, section, ctx.Settings)
	log.Debug("section calculated",
		zap.Float64("parts_total", res.Totals.PartsTotal),
		zap.Float64("labor_total", res.Totals.LaborTotal),
		zap.Float64("unit_price", res.Totals.UnitPrice),
	)
	return res
}

func reportGaps(log *zap.Logger, section model.Section, eff resolve.Effective, ctx *model.Context, b *Breakdown) {
	if len(b.Boxes.Parts) > 0 {
		if _, ok := ctx.BoxMaterials[eff.BoxMaterialID]; !ok {
			log.Debug("box material not found", zap.Int64("material_id", eff.BoxMaterialID))
		}
	}
	if len(b.Faces.Lines) > 0 {
		if _, ok := ctx.FaceMaterials[eff.FaceMaterialID]; !ok {
			log.Debug("face material not found", zap.Int64("material_id", eff.FaceMaterialID))
		}
	}
	if _, ok := ctx.DrawerBoxMaterials[eff.DrawerBoxMaterialID]; !ok {
		for _, cab := range section.Cabinets {
			if len(cab.DrawerBoxes) > 0 {
				log.Debug("drawer box material not found", zap.Int64("material_id", eff.DrawerBoxMaterialID))
				break
			}
		}
	}
	if b.Faces.Unpriced > 0 {
		log.Debug("faces without a pricing style", zap.Int("faces", b.Faces.Unpriced))
	}
	for _, c := range slices.Concat(b.Boxes.Sheets.Capped, b.Faces.Sheets.Capped) {
		log.Warn("piece count capped",
			zap.String("part", c.Label),
			zap.String("category", string(c.Category)),
			zap.Int("requested", c.Requested),
			zap.Int("packed", c.Packed),
		)
	}
	for _, c := range b.Hardware.Missing {
		log.Debug("hardware selection not found", zap.String("category", string(c)))
	}
	for _, id := range b.Accessories.Missing {
		log.Debug("accessory not found", zap.Int64("accessory_id", id))
	}
	for _, id := range b.Lengths.Missing {
		log.Debug("length item not found", zap.Int64("length_id", id))
	}
}

func others(items []model.OtherItem) []OtherLine {
	out := make([]OtherLine, 0, len(items))
	for _, it := range items {
		price, qty := it.Price.Float(), it.Quantity.Float()
		out = append(out, OtherLine{Name: it.Name, Price: price, Quantity: qty, Total: model.Finite(price * qty)})
	}
	return out
}

// categories builds the category lines in display order. Face sub-categories
// are resolved before the other-face catch-all.
func categories(b *Breakdown, included model.PartsIncluded) []CategoryLine {
	counts := b.Hardware.Counts
	lines := map[model.Category]CategoryLine{
		model.CatBox:         {Count: float64(b.Boxes.Sheets.Pieces), Price: b.Boxes.Sheets.Total},
		model.CatDrawerBox:   {Count: b.Drawers.Boxes.Count, Price: b.Drawers.Boxes.TotalCost},
		model.CatRollOut:     {Count: b.Drawers.Rollouts.Count, Price: b.Drawers.Rollouts.TotalCost},
		model.CatHinges:      {Count: counts.Hinges, Price: b.Hardware.Categories[model.CatHinges]},
		model.CatSlides:      {Count: counts.Slides, Price: b.Hardware.Categories[model.CatSlides]},
		model.CatPulls:       {Count: counts.Pulls(), Price: b.Hardware.Categories[model.CatPulls]},
		model.CatAccessories: {Price: b.Accessories.Total},
		model.CatLengths:     {Price: b.Lengths.Total},
	}
	for cat, ft := range b.Faces.Categories {
		lines[cat] = CategoryLine{Count: ft.Count, Price: ft.Price}
	}
	acc := lines[model.CatAccessories]
	for _, l := range b.Accessories.Lines {
		acc.Count += l.Quantity
	}
	lines[model.CatAccessories] = acc
	lng := lines[model.CatLengths]
	for _, l := range b.Lengths.Lines {
		lng.Count += l.Quantity
	}
	lines[model.CatLengths] = lng
	var other CategoryLine
	for _, o := range b.Others {
		other.Count += o.Quantity
		other.Price += o.Total
	}
	lines[model.CatOther] = other

	out := make([]CategoryLine, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		l := lines[c]
		l.Category = c
		l.Price = model.Finite(l.Price)
		l.Included = included.Included(c)
		out = append(out, l)
	}
	return out
}

// hours merges every engine's minutes, adds the manual hours, and adds the
// install setup allowance when the install bucket is non-zero.
func hours(section model.Section, b *Breakdown, s model.Settings) model.Hours {
	minutes := model.Minutes{}
	minutes.Add(b.Boxes.Minutes)
	minutes.Add(b.Faces.Minutes)
	minutes.Add(b.Hardware.Minutes)
	minutes.Add(b.Accessories.Minutes)
	minutes.Add(b.Lengths.Minutes)

	h := minutes.Hours()
	for id, v := range section.AddHours {
		h[id] += v.Float()
	}
	if h[s.InstallServiceID] != 0 {
		h[s.InstallServiceID] += s.InstallSetupHours
	}
	for id, v := range h {
		if v == 0 {
			delete(h, id)
		}
	}
	return h
}

// labor prices every service with hours, in catalog order, followed by hours
// booked against services the catalog does not know.
func labor(h model.Hours, section model.Section, ctx *model.Context, log *zap.Logger) []LaborLine {
	var out []LaborLine
	seen := map[int64]bool{}
	for _, svc := range ctx.Services {
		seen[svc.ID] = true
		hrs, ok := h[svc.ID]
		if !ok {
			continue
		}
		rate := resolve.Rate(svc, section.Overrides, ctx.Project, ctx.Defaults)
		out = append(out, LaborLine{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Hours:     hrs,
			Rate:      rate,
			Cost:      model.Finite(hrs * rate),
			Included:  section.ServiceIncluded(svc.ID),
		})
	}
	for _, id := range h.IDs() {
		if seen[id] {
			continue
		}
		log.Debug("hours for unknown service", zap.Int64("service_id", id))
		out = append(out, LaborLine{ServiceID: id, Hours: h[id], Included: section.ServiceIncluded(id)})
	}
	return out
}

func finalize(t Totals, section model.Section, s model.Settings) Totals {
	t.PartsTotal = model.Finite(t.PartsTotal)
	t.LaborTotal = model.Finite(t.LaborTotal)
	t.Subtotal = t.PartsTotal + t.LaborTotal
	t.Profit = t.Subtotal * section.ProfitPercent.Float() / 100
	t.Commission = t.Subtotal * section.CommissionPercent.Float() / 100
	t.Discount = t.Subtotal * section.DiscountPercent.Float() / 100
	t.Amount = t.Subtotal + t.Profit + t.Commission - t.Discount

	t.UnitPrice = CeilTo(t.Amount, s.RoundTo)
	t.Quantity = section.Quantity.Float()
	t.TotalPrice = t.UnitPrice * t.Quantity
	t.DisplayPrice = t.TotalPrice
	if t.Quantity == 0 {
		t.DisplayPrice = t.Amount
	}
	return t
}
