package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrZero(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"integer", "24", 24},
		{"decimal", "23.5", 23.5},
		{"padded", "  12 ", 12},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"nan", "NaN", 0},
		{"infinity", "+Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrZero(tt.in))
		})
	}
}

func TestNum_UnmarshalCoercesInvalidInputToZero(t *testing.T) {
	payload := []byte(`{
		"quantity": "2",
		"profitPercent": "ten",
		"commissionPercent": null,
		"discountPercent": 5,
		"cabinets": [{"width": "30", "height": "", "depth": "x", "quantity": 1}]
	}`)

	var s Section
	require.NoError(t, json.Unmarshal(payload, &s))

	assert.Equal(t, 2.0, s.Quantity.Float())
	assert.Equal(t, 0.0, s.ProfitPercent.Float())
	assert.Equal(t, 0.0, s.CommissionPercent.Float())
	assert.Equal(t, 5.0, s.DiscountPercent.Float())
	require.Len(t, s.Cabinets, 1)
	assert.Equal(t, 30.0, s.Cabinets[0].Width.Float())
	assert.Equal(t, 0.0, s.Cabinets[0].Height.Float())
	assert.Equal(t, 0.0, s.Cabinets[0].Depth.Float())
}

func TestNum_FloatGuardsNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, Num(math.NaN()).Float())
	assert.Equal(t, 0.0, Num(math.Inf(1)).Float())

	b, err := json.Marshal(Num(math.Inf(-1)))
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))
}

func TestPartsIncluded(t *testing.T) {
	p := PartsIncluded{CatBox: false, CatDoor: true, CatOtherFace: false}

	assert.False(t, p.Included(CatBox))
	assert.True(t, p.Included(CatDoor))
	assert.True(t, p.Included(CatHinges), "missing toggles default to included")
	assert.True(t, p.Included(CatOtherFace), "other face types are never toggled")

	var empty PartsIncluded
	assert.True(t, empty.Included(CatBox))
}

func TestSection_ServiceIncluded(t *testing.T) {
	s := Section{ServicesIncluded: map[int64]bool{1: false, 2: true}}

	assert.False(t, s.ServiceIncluded(1))
	assert.True(t, s.ServiceIncluded(2))
	assert.True(t, s.ServiceIncluded(3))
}

func TestOverrides_RateTreatsZeroAsDefined(t *testing.T) {
	o := Overrides{ServiceRates: map[int64]float64{1: 0}}

	require.NotNil(t, o.Rate(1))
	assert.Equal(t, 0.0, *o.Rate(1))
	assert.Nil(t, o.Rate(2))
}

func TestMinutes_Conversions(t *testing.T) {
	m := Minutes{1: 30, 2: 90}

	scaled := m.Scale(2)
	assert.Equal(t, Minutes{1: 60, 2: 180}, scaled)
	assert.Equal(t, Minutes{1: 30, 2: 90}, m, "Scale must not mutate the receiver")

	multiplied := m.Multiply(map[int64]float64{2: 1.5})
	assert.Equal(t, Minutes{1: 30, 2: 135}, multiplied)

	h := m.Hours()
	assert.InDelta(t, 0.5, h[1], 1e-9)
	assert.InDelta(t, 1.5, h[2], 1e-9)
	assert.Equal(t, []int64{1, 2}, h.IDs())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 0.5, s.MinBilledSheets)
	assert.Equal(t, 1.5, s.OversizePremium)
	assert.Equal(t, 108.0, s.OversizeMinHeight)
	assert.Equal(t, 0.25, s.DrawerSheetIncrement)
	assert.Equal(t, int64(3), s.InstallServiceID)
	assert.Equal(t, 5.0, s.RoundTo)
	assert.False(t, s.AllowRotation)
}

func TestContext_FinishMultipliers(t *testing.T) {
	c := &Context{FinishTypes: map[int64]FinishType{
		7: {ID: 7, Multipliers: map[int64]float64{1: 1.2, 2: 1.5}},
	}}

	assert.Nil(t, c.FinishMultipliers(Material{NeedsFinish: false, FinishTypeID: 7}))
	assert.Nil(t, c.FinishMultipliers(Material{NeedsFinish: true, FinishTypeID: 8}))
	assert.Equal(t, map[int64]float64{1: 1.2, 2: 1.5}, c.FinishMultipliers(Material{NeedsFinish: true, FinishTypeID: 7}))
}
