package sheets

import "sort"

const eps = 1e-6

// Rect is an axis-aligned rectangle on a bin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Item is one rectangle to pack. Index is echoed back in its placement.
type Item struct {
	Index int
	W, H  float64
}

// Placement is where an item landed. The rectangle includes the kerf allowance.
type Placement struct {
	Index   int  `json:"index"`
	Rect    Rect `json:"rect"`
	Rotated bool `json:"rotated"`
}

// Bin is one packed sheet.
type Bin struct {
	W          float64     `json:"w"`
	H          float64     `json:"h"`
	Placements []Placement `json:"placements"`

	free []Rect
}

// Packer packs rectangles into fixed-size bins with a max-rects free list and a
// best-area-fit choice across every open bin.
type Packer struct {
	BinW, BinH    float64
	Kerf          float64
	AllowRotation bool
}

// Pack places every item. Items are taken largest area first; ties keep input
// order, so a fixed input always yields the same layout. An item that cannot fit
// an empty bin gets a dedicated bin of its own size.
func (p Packer) Pack(items []Item) []Bin {
	order := make([]Item, len(items))
	copy(order, items)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].W*order[i].H > order[j].W*order[j].H
	})

	var bins []*Bin
	for _, it := range order {
		w, h := it.W+p.Kerf, it.H+p.Kerf
		if w <= 0 || h <= 0 {
			continue
		}

		bi, fi, rotated, ok := p.bestFit(bins, w, h)
		if !ok {
			b := p.newBin(w, h)
			bins = append(bins, b)
			bi = len(bins) - 1
			if !fits(b.free[0], w, h) {
				rotated = true
			}
			fi = 0
		}
		if rotated {
			w, h = h, w
		}

		b := bins[bi]
		r := Rect{X: b.free[fi].X, Y: b.free[fi].Y, W: w, H: h}
		b.Placements = append(b.Placements, Placement{Index: it.Index, Rect: r, Rotated: rotated})
		b.free = splitAround(b.free, r)
	}

	out := make([]Bin, len(bins))
	for i, b := range bins {
		out[i] = Bin{W: b.W, H: b.H, Placements: b.Placements}
	}
	return out
}

func (p Packer) newBin(w, h float64) *Bin {
	bw, bh := p.BinW, p.BinH
	if !fits(Rect{W: bw, H: bh}, w, h) && !(p.AllowRotation && fits(Rect{W: bw, H: bh}, h, w)) {
		bw, bh = max(bw, w), max(bh, h)
	}
	return &Bin{W: bw, H: bh, free: []Rect{{W: bw, H: bh}}}
}

// bestFit finds the free rectangle with the least leftover area. Earlier bins
// and earlier free rectangles win ties.
func (p Packer) bestFit(bins []*Bin, w, h float64) (bin, free int, rotated, ok bool) {
	bestBin, bestFree := -1, -1
	bestRot := false
	bestWaste := 0.0
	try := func(bi, fi int, r Rect, ww, hh float64, rot bool) {
		if !fits(r, ww, hh) {
			return
		}
		waste := r.W*r.H - ww*hh
		if bestBin < 0 || waste < bestWaste-eps {
			bestBin, bestFree, bestRot, bestWaste = bi, fi, rot, waste
		}
	}
	for bi, b := range bins {
		for fi, r := range b.free {
			try(bi, fi, r, w, h, false)
			if p.AllowRotation && w != h {
				try(bi, fi, r, h, w, true)
			}
		}
	}
	return bestBin, bestFree, bestRot, bestBin >= 0
}

func fits(r Rect, w, h float64) bool {
	return w <= r.W+eps && h <= r.H+eps
}

// splitAround removes every free rectangle overlapping placed, replaces it with
// up to four maximal strips around placed, and prunes contained rectangles.
func splitAround(free []Rect, placed Rect) []Rect {
	var next []Rect
	for _, r := range free {
		if !overlaps(r, placed) {
			next = append(next, r)
			continue
		}
		if placed.X > r.X+eps {
			next = append(next, Rect{X: r.X, Y: r.Y, W: placed.X - r.X, H: r.H})
		}
		if placed.X+placed.W < r.X+r.W-eps {
			next = append(next, Rect{X: placed.X + placed.W, Y: r.Y, W: r.X + r.W - placed.X - placed.W, H: r.H})
		}
		if placed.Y > r.Y+eps {
			next = append(next, Rect{X: r.X, Y: r.Y, W: r.W, H: placed.Y - r.Y})
		}
		if placed.Y+placed.H < r.Y+r.H-eps {
			next = append(next, Rect{X: r.X, Y: placed.Y + placed.H, W: r.W, H: r.Y + r.H - placed.Y - placed.H})
		}
	}
	return pruneContained(next)
}

func overlaps(a, b Rect) bool {
	return a.X < b.X+b.W-eps && a.X+a.W > b.X+eps &&
		a.Y < b.Y+b.H-eps && a.Y+a.H > b.Y+eps
}

func contains(outer, inner Rect) bool {
	return outer.X <= inner.X+eps && outer.Y <= inner.Y+eps &&
		outer.X+outer.W >= inner.X+inner.W-eps &&
		outer.Y+outer.H >= inner.Y+inner.H-eps
}

// pruneContained drops rectangles inside another one. Of two identical
// rectangles the first is kept.
func pruneContained(rects []Rect) []Rect {
	kept := make([]Rect, 0, len(rects))
	for i, a := range rects {
		dropped := false
		for j, b := range rects {
			if i == j || !contains(b, a) {
				continue
			}
			if contains(a, b) && i < j {
				continue
			}
			dropped = true
			break
		}
		if !dropped {
			kept = append(kept, a)
		}
	}
	return kept
}
