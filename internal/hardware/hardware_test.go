package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/resolve"
)

func cabinets() []model.CabinetItem {
	return []model.CabinetItem{
		{Quantity: 2, Hardware: model.HardwareSummary{Hinges: 2, DoorPulls: 2, ShelfHoles: 12}},
		{Quantity: 1, Hardware: model.HardwareSummary{Slides: 3, DrawerPulls: 3}},
		{Quantity: 1, Hardware: model.HardwareSummary{AppliancePulls: 1}},
		{Quantity: 0, Hardware: model.HardwareSummary{Hinges: 100}},
	}
}

func catalog() *model.Context {
	return &model.Context{
		Hinges: map[int64]model.Hardware{1: {ID: 1, Name: "Soft close hinge", Price: 4, Minutes: model.Minutes{1: 3, 3: 1.5}}},
		Slides: map[int64]model.Hardware{2: {ID: 2, Name: "Undermount 21in", Price: 30, Minutes: model.Minutes{1: 12}}},
		Pulls: map[int64]model.Hardware{
			3: {ID: 3, Name: "Bar pull", Price: 6, Minutes: model.Minutes{3: 4}},
			4: {ID: 4, Name: "Cup pull", Price: 9, Minutes: model.Minutes{3: 4}},
		},
	}
}

func TestCount(t *testing.T) {
	c := Count(cabinets())

	assert.Equal(t, Counts{Hinges: 4, Slides: 3, DoorPulls: 4, DrawerPulls: 3, AppliancePulls: 1, ShelfHoles: 24}, c)
	assert.Equal(t, 8.0, c.Pulls())
}

func TestCalculate(t *testing.T) {
	eff := resolve.Effective{HingeID: 1, SlideID: 2, DoorPullID: 3, DrawerPullID: 4, AppliancePullID: 3}

	res := Calculate(cabinets(), eff, catalog())

	assert.InDelta(t, 16.0, res.Categories[model.CatHinges], 1e-9)
	assert.InDelta(t, 90.0, res.Categories[model.CatSlides], 1e-9)
	assert.InDelta(t, 4*6+3*9+1*6.0, res.Categories[model.CatPulls], 1e-9)
	require.Len(t, res.Lines, 5)

	// shop: 4 hinges * 3 + 3 slides * 12; install: 4 hinges * 1.5 + 8 pulls * 4
	assert.InDelta(t, 48.0, res.Minutes[1], 1e-9)
	assert.InDelta(t, 38.0, res.Minutes[3], 1e-9)
	assert.Empty(t, res.Missing)
}

func TestCalculate_MissingSelection(t *testing.T) {
	eff := resolve.Effective{HingeID: 1, SlideID: 99}

	res := Calculate(cabinets(), eff, catalog())

	assert.InDelta(t, 16.0, res.Categories[model.CatHinges], 1e-9)
	assert.Zero(t, res.Categories[model.CatSlides])
	assert.Zero(t, res.Categories[model.CatPulls])
	assert.Equal(t, []model.Category{model.CatSlides, model.CatPulls, model.CatPulls, model.CatPulls}, res.Missing)
}

func TestCalculate_NoHardware(t *testing.T) {
	res := Calculate(nil, resolve.Effective{}, catalog())

	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Minutes)
}
