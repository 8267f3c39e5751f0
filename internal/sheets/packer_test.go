package sheets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedItems() []Item {
	dims := [][2]float64{
		{23.25, 30}, {23.25, 30}, {34.5, 23.25}, {34.5, 23.25}, {12, 30},
		{12, 30}, {36, 11.25}, {36, 11.25}, {18, 42}, {18, 42},
		{24, 24}, {15, 15}, {8, 40}, {30, 30}, {46, 20}, {46, 20},
		{10, 10}, {10, 10}, {10, 10}, {22, 70},
	}
	items := make([]Item, len(dims))
	for i, d := range dims {
		items[i] = Item{Index: i, W: d[0], H: d[1]}
	}
	return items
}

func TestPack_EveryItemPlacedOnceWithoutOverlap(t *testing.T) {
	items := mixedItems()
	p := Packer{BinW: 48.125, BinH: 96.125, Kerf: 0.125}

	bins := p.Pack(items)

	seen := map[int]int{}
	for bi, b := range bins {
		for i, a := range b.Placements {
			seen[a.Index]++
			assert.GreaterOrEqual(t, a.Rect.X, -eps)
			assert.GreaterOrEqual(t, a.Rect.Y, -eps)
			assert.LessOrEqual(t, a.Rect.X+a.Rect.W, b.W+eps, "bin %d placement %d exceeds width", bi, i)
			assert.LessOrEqual(t, a.Rect.Y+a.Rect.H, b.H+eps, "bin %d placement %d exceeds height", bi, i)
			for _, c := range b.Placements[i+1:] {
				assert.False(t, overlaps(a.Rect, c.Rect), "bin %d: %d overlaps %d", bi, a.Index, c.Index)
			}
		}
	}
	require.Len(t, seen, len(items))
	for idx, n := range seen {
		assert.Equal(t, 1, n, "item %d", idx)
	}
}

func TestPack_BinsCoverTotalArea(t *testing.T) {
	items := mixedItems()
	p := Packer{BinW: 48.125, BinH: 96.125, Kerf: 0.125}

	area := 0.0
	for _, it := range items {
		area += it.W * it.H
	}
	bins := p.Pack(items)

	assert.GreaterOrEqual(t, len(bins), int(math.Ceil(area/(48*96))))
}

func TestPack_Deterministic(t *testing.T) {
	p := Packer{BinW: 48.125, BinH: 96.125, Kerf: 0.125}

	first := p.Pack(mixedItems())
	for range 5 {
		assert.Equal(t, first, p.Pack(mixedItems()))
	}
}

func TestPack_SmallItemsShareOneBin(t *testing.T) {
	p := Packer{BinW: 48, BinH: 96}
	items := []Item{{Index: 0, W: 24, H: 48}, {Index: 1, W: 24, H: 48}, {Index: 2, W: 24, H: 48}, {Index: 3, W: 24, H: 48}}

	bins := p.Pack(items)

	require.Len(t, bins, 1)
	assert.Len(t, bins[0].Placements, 4)
}

func TestPack_OversizedItemGetsOwnBin(t *testing.T) {
	p := Packer{BinW: 48, BinH: 96}

	bins := p.Pack([]Item{{Index: 0, W: 10, H: 10}, {Index: 1, W: 50, H: 100}})

	require.Len(t, bins, 2)
	assert.Equal(t, 1, bins[0].Placements[0].Index)
	assert.Equal(t, 50.0, bins[0].W)
	assert.Equal(t, 100.0, bins[0].H)
	assert.Equal(t, 48.0, bins[1].W)
}

func TestPack_Rotation(t *testing.T) {
	items := []Item{{Index: 0, W: 90, H: 20}}

	fixed := Packer{BinW: 48, BinH: 96}.Pack(items)
	require.Len(t, fixed, 1)
	assert.Equal(t, 90.0, fixed[0].W, "without rotation the bin is enlarged")

	rotating := Packer{BinW: 48, BinH: 96, AllowRotation: true}.Pack(items)
	require.Len(t, rotating, 1)
	assert.Equal(t, 48.0, rotating[0].W)
	assert.True(t, rotating[0].Placements[0].Rotated)
}

func TestPack_SkipsEmptyItems(t *testing.T) {
	assert.Empty(t, Packer{BinW: 48, BinH: 96}.Pack([]Item{{Index: 0}}))
	assert.Empty(t, Packer{BinW: 48, BinH: 96}.Pack(nil))
}
