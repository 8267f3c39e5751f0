package faces

import (
	"math"

	"github.com/Simplici0/cabinetry/internal/interp"
	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/sheets"
)

const (
	// fivePieceBaseArea is the door area in square inches covered by the base price.
	fivePieceBaseArea = 23 * 31
	// defaultHardwoodThickness is used when the material has no thickness.
	defaultHardwoodThickness = 0.75
)

// boardFeetCurve maps a 5-piece face's square feet to the board feet it
// consumes.
var boardFeetCurve = interp.Curve{
	Points: []interp.Point{
		{X: 1, Y: 1.6},
		{X: 3, Y: 3.9},
		{X: 5, Y: 5.8},
		{X: 8, Y: 8.4},
		{X: 12, Y: 11.5},
	},
	Above:       interp.Extrapolate,
	BelowFactor: 0.5,
}

// BoardFeet estimates the board feet consumed by a 5-piece face of the given
// area in square inches.
func BoardFeet(area float64) float64 {
	if area <= 0 {
		return 0
	}
	return boardFeetCurve.At(area / 144)
}

type input struct {
	material model.Material
	molding  model.Molding
	settings model.Settings
}

// priced is a style group's contribution.
type priced struct {
	byCategory map[model.Category]float64
	unit       []float64 // unit price per face, in input order
	boardFeet  []float64
	sheets     sheets.Result
}

// stylePricer prices every face of one finish style. Implementations are the
// closed set returned by pricerFor.
type stylePricer interface {
	price(faces []Face, in input) priced
}

type slabSheet struct{}

type fivePiece struct{}

type slabHardwood struct{}

func pricerFor(style model.FaceStyle) (stylePricer, bool) {
	switch style {
	case model.StyleSlabSheet:
		return slabSheet{}, true
	case model.StyleFivePiece:
		return fivePiece{}, true
	case model.StyleSlabHardwood:
		return slabHardwood{}, true
	}
	return nil, false
}

// price packs the whole group at once and allocates the sheet result to the
// face categories by area share. Faces are banded on every edge.
func (slabSheet) price(faces []Face, in input) priced {
	parts := make([]sheets.Part, 0, len(faces))
	for _, f := range faces {
		parts = append(parts, sheets.Part{
			Category: f.Category,
			Width:    f.Width,
			Height:   f.Height,
			Quantity: sheets.Pieces(f.Quantity),
			Banding:  2 * (f.Width + f.Height),
		})
	}
	res := sheets.Cost(sheets.Request{
		Role:     sheets.RoleFace,
		Category: model.CatOtherFace,
		Material: in.material,
		Parts:    parts,
	}, in.settings)

	out := newPriced(len(faces))
	out.byCategory = res.ByCategory()
	out.sheets = res
	if area := totalArea(faces); area > 0 {
		for i, f := range faces {
			out.unit[i] = res.Total * f.Area() / area
		}
	}
	return out
}

func (fivePiece) price(faces []Face, in input) priced {
	out := newPriced(len(faces))
	ppbf := model.Finite(in.material.BoardFootPrice)
	if ppbf <= 0 {
		return out
	}
	s := in.settings
	base := 30 * math.Pow(ppbf, 0.65)
	oversizeRate := 0.065 * math.Pow(ppbf/3.05, 0.95) * 1.15
	setup := 10 + ppbf*1.5
	markup := 1 + (s.TaxRate*100+s.DeliveryPercent+s.CardFeePercent)/100

	for i, f := range faces {
		extra := math.Max(0, f.Area()-fivePieceBaseArea) * oversizeRate
		unit := (base+extra+setup)*markup + molding(f, in.molding, s)
		out.add(i, f, unit)
		out.boardFeet[i] = BoardFeet(f.Area())
	}
	return out
}

func (slabHardwood) price(faces []Face, in input) priced {
	out := newPriced(len(faces))
	ppbf := model.Finite(in.material.BoardFootPrice)
	if ppbf <= 0 {
		return out
	}
	thickness := model.Finite(in.material.Thickness)
	if thickness <= 0 {
		thickness = defaultHardwoodThickness
	}
	for i, f := range faces {
		bf := f.Area() * thickness / 144
		out.add(i, f, bf*ppbf+molding(f, in.molding, in.settings))
		out.boardFeet[i] = bf
	}
	return out
}

func newPriced(n int) priced {
	return priced{
		byCategory: map[model.Category]float64{},
		unit:       make([]float64, n),
		boardFeet:  make([]float64, n),
	}
}

func (p priced) add(i int, f Face, unit float64) {
	unit = model.Finite(unit)
	p.unit[i] = unit
	p.byCategory[f.Category] += unit * f.Quantity
}

// molding is the per-face molding surcharge: perimeter feet at the inside
// and/or outside molding rate.
func molding(f Face, m model.Molding, s model.Settings) float64 {
	feet := 2 * (f.Width + f.Height) / 12
	cost := 0.0
	if m.Inside {
		cost += feet * s.InsideMoldingPerFoot
	}
	if m.Outside {
		cost += feet * s.OutsideMoldingPerFoot
	}
	return cost
}

func totalArea(faces []Face) float64 {
	a := 0.0
	for _, f := range faces {
		a += f.Area() * f.Quantity
	}
	return a
}
