// Package sheets packs flat parts onto priced stock sheets and derives sheet,
// setup, cutting, edge-banding and drilling costs per packing group.
package sheets

import (
	"math"

	"github.com/Simplici0/cabinetry/internal/model"
)

// Role is the material role a part is cut from.
type Role string

const (
	RoleBox  Role = "box"
	RoleFace Role = "face"
)

// Part is a flat part. Dimensions and banding are inches; Banding is the edge
// banding length of one piece.
type Part struct {
	Label    string         `json:"label"`
	Category model.Category `json:"category"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Quantity int            `json:"quantity"`
	Banding  float64        `json:"banding"`
}

// Drilling counts per-unit machining charged with the sheet group.
type Drilling struct {
	HingeBores float64 `json:"hingeBores"`
	Slides     float64 `json:"slides"`
	ShelfHoles float64 `json:"shelfHoles"`
}

// Request is everything cut from one material role.
type Request struct {
	Role     Role
	Category model.Category
	Material model.Material
	Parts    []Part

	// ExtraBanding and Drilling are section-level charges carried by the
	// standard group, or by the oversize group when no standard part exists.
	ExtraBanding float64
	Drilling     Drilling
}

// Group is one (role, oversize) packing group with its costs.
type Group struct {
	Role        Role           `json:"role"`
	Oversize    bool           `json:"oversize"`
	Category    model.Category `json:"category"`
	SheetWidth  float64        `json:"sheetWidth"`
	SheetLength float64        `json:"sheetLength"`
	SheetPrice  float64        `json:"sheetPrice"`

	Pieces       int     `json:"pieces"`
	PartArea     float64 `json:"partArea"`
	Bins         []Bin   `json:"bins"`
	BinsUsed     int     `json:"binsUsed"`
	SheetsBilled float64 `json:"sheetsBilled"`
	Efficiency   float64 `json:"efficiency"`

	SheetCost    float64 `json:"sheetCost"`
	SetupCost    float64 `json:"setupCost"`
	CutCost      float64 `json:"cutCost"`
	BandingCost  float64 `json:"bandingCost"`
	DrillingCost float64 `json:"drillingCost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`

	AreaByCategory map[model.Category]float64 `json:"areaByCategory"`
}

// Result aggregates the groups of one request. Capped lists the parts whose
// piece count was cut to stay within Settings.MaxPieces.
type Result struct {
	Groups []Group  `json:"groups"`
	Sheets float64  `json:"sheets"`
	Pieces int      `json:"pieces"`
	Total  float64  `json:"total"`
	Capped []Capped `json:"capped,omitempty"`
}

// Capped is a part packed with fewer pieces than requested.
type Capped struct {
	Label     string         `json:"label"`
	Category  model.Category `json:"category"`
	Requested int            `json:"requested"`
	Packed    int            `json:"packed"`
}

// maxQuantity keeps float to int conversions representable on every platform.
const maxQuantity = math.MaxInt32

// Pieces converts a possibly fractional quantity to a piece count. Non-finite
// and negative quantities give zero.
func Pieces(q float64) int {
	q = math.Round(model.Finite(q))
	switch {
	case q <= 0:
		return 0
	case q >= maxQuantity:
		return maxQuantity
	}
	return int(q)
}

type piece struct {
	part    Part
	w, h    float64
	banding float64
}

// Cost packs and prices a request. A material without sheet dimensions yields
// an empty result.
func Cost(req Request, s model.Settings) Result {
	mat := req.Material
	sw, sl := model.Finite(mat.SheetWidth), model.Finite(mat.SheetLength)
	if sw <= 0 || sl <= 0 {
		return Result{}
	}

	var res Result
	budget := s.MaxPieces
	var standard, oversize []piece
	for _, p := range req.Parts {
		w, h := model.Finite(p.Width), model.Finite(p.Height)
		if w <= 0 || h <= 0 {
			continue
		}
		if p.Category == "" {
			p.Category = req.Category
		}
		n := max(p.Quantity, 0)
		if s.MaxPieces > 0 && n > budget {
			res.Capped = append(res.Capped, Capped{Label: p.Label, Category: p.Category, Requested: n, Packed: budget})
			n = budget
		}
		budget -= n
		for range n {
			pc := piece{part: p, w: w, h: h, banding: model.Finite(p.Banding)}
			if isOversize(w, h, sw, sl, s.AllowRotation) {
				oversize = append(oversize, pc)
			} else {
				standard = append(standard, pc)
			}
		}
	}

	hasExtras := req.ExtraBanding > 0 || req.Drilling != (Drilling{})
	extrasOnStandard := len(standard) > 0 || len(oversize) == 0

	if len(standard) > 0 || (hasExtras && extrasOnStandard) {
		g := Group{Role: req.Role, Category: req.Category, SheetWidth: sw, SheetLength: sl, SheetPrice: model.Finite(mat.SheetPrice)}
		res.Groups = append(res.Groups, price(g, standard, req, extrasOnStandard, s))
	}
	if len(oversize) > 0 {
		vw, vl := sw, max(sl, s.OversizeMinHeight)
		for _, pc := range oversize {
			vw, vl = max(vw, pc.w), max(vl, pc.h)
		}
		perArea := model.Finite(mat.SheetPrice) / (sw * sl)
		g := Group{
			Role: req.Role, Oversize: true, Category: req.Category,
			SheetWidth: vw, SheetLength: vl,
			SheetPrice: perArea * vw * vl * s.OversizePremium,
		}
		res.Groups = append(res.Groups, price(g, oversize, req, !extrasOnStandard, s))
	}

	for _, g := range res.Groups {
		res.Sheets += g.SheetsBilled
		res.Pieces += g.Pieces
		res.Total += g.Total
	}
	return res
}

func isOversize(w, h, sw, sl float64, allowRotation bool) bool {
	if w <= sw+eps && h <= sl+eps {
		return false
	}
	return !(allowRotation && h <= sw+eps && w <= sl+eps)
}

func price(g Group, pieces []piece, req Request, withExtras bool, s model.Settings) Group {
	items := make([]Item, len(pieces))
	g.AreaByCategory = map[model.Category]float64{}
	banding := 0.0
	perimeter := 0.0
	for i, pc := range pieces {
		items[i] = Item{Index: i, W: pc.w, H: pc.h}
		area := pc.w * pc.h
		g.PartArea += area
		g.AreaByCategory[pc.part.Category] += area
		perimeter += 2 * (pc.w + pc.h)
		banding += pc.banding
	}
	g.Pieces = len(pieces)

	if len(items) > 0 {
		packer := Packer{BinW: g.SheetWidth + s.Kerf, BinH: g.SheetLength + s.Kerf, Kerf: s.Kerf, AllowRotation: s.AllowRotation}
		g.Bins = packer.Pack(items)
	}
	g.BinsUsed = len(g.Bins)

	g.SheetsBilled = float64(g.BinsUsed)
	if g.Pieces > 0 && g.SheetsBilled < s.MinBilledSheets {
		g.SheetsBilled = s.MinBilledSheets
	}
	if used := float64(g.BinsUsed) * g.SheetWidth * g.SheetLength; used > 0 {
		g.Efficiency = g.PartArea / used
	}

	drilling := 0.0
	if withExtras {
		banding += model.Finite(req.ExtraBanding)
		d := req.Drilling
		// Each slide is drilled twice.
		drilling = model.Finite(d.HingeBores)*s.HingeBoreCost +
			model.Finite(d.Slides)*2*s.SlideDrillCost +
			model.Finite(d.ShelfHoles)*s.ShelfHoleCost
	}

	g.SheetCost = g.SheetsBilled * g.SheetPrice
	g.SetupCost = math.Ceil(g.SheetsBilled) * s.SetupCostPerSheet
	g.CutCost = perimeter / 12 * s.CutPricePerFoot
	g.BandingCost = banding / 12 * s.EdgeBandPricePerFoot
	g.DrillingCost = drilling

	subtotal := g.SheetCost + g.SetupCost + g.CutCost + g.BandingCost + g.DrillingCost
	g.Tax = subtotal * s.TaxRate
	g.Total = model.Finite(subtotal + g.Tax)
	return g
}

// ByCategory distributes each group's total across the categories in it by
// area share. A group with no part area is attributed to its request category.
func (r Result) ByCategory() map[model.Category]float64 {
	out := map[model.Category]float64{}
	for _, g := range r.Groups {
		if g.PartArea <= 0 {
			out[g.Category] += g.Total
			continue
		}
		for cat, area := range g.AreaByCategory {
			out[cat] += g.Total * area / g.PartArea
		}
	}
	return out
}
