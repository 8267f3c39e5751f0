package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Simplici0/cabinetry/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestValue_Precedence(t *testing.T) {
	tests := []struct {
		name                      string
		item, parent, grandparent *int
		want                      int
	}{
		{"item wins", ptr(5), ptr(10), ptr(20), 5},
		{"parent when item unset", nil, ptr(10), ptr(20), 10},
		{"grandparent when both unset", nil, nil, ptr(20), 20},
		{"zero is defined", ptr(0), ptr(10), ptr(20), 0},
		{"fallback when nothing defined", nil, nil, nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.item, tt.parent, tt.grandparent, -1))
		})
	}
}

func TestValue_FalseIsDefined(t *testing.T) {
	assert.False(t, Value(ptr(false), ptr(true), nil, true))
}

func TestDefaults(t *testing.T) {
	section := model.Overrides{FaceMaterialID: ptr(int64(4))}
	project := model.Overrides{
		DoorStyle:      ptr(model.StyleFivePiece),
		FaceMaterialID: ptr(int64(9)),
		DoorPullID:     ptr(int64(12)),
	}
	org := model.Overrides{
		CabinetStyleID: ptr(int64(2)),
		DoorStyle:      ptr(model.StyleSlabHardwood),
		BoxMaterialID:  ptr(int64(1)),
	}

	e := Defaults(section, project, org)

	assert.Equal(t, int64(2), e.CabinetStyleID)
	assert.Equal(t, model.StyleFivePiece, e.DoorStyle)
	assert.Equal(t, FallbackDrawerFrontStyle, e.DrawerFrontStyle)
	assert.Equal(t, int64(1), e.BoxMaterialID)
	assert.Equal(t, int64(4), e.FaceMaterialID)
	assert.Equal(t, int64(0), e.DrawerBoxMaterialID)
	assert.Equal(t, int64(12), e.AppliancePullID, "appliance pull falls back to the door pull")
}

func TestForCabinet(t *testing.T) {
	e := Effective{CabinetStyleID: 2, DoorStyle: model.StyleSlabSheet, DrawerFrontStyle: model.StyleSlabSheet}

	plain := e.ForCabinet(model.CabinetItem{})
	assert.Equal(t, Cabinet{CabinetStyleID: 2, DoorStyle: model.StyleSlabSheet, DrawerFrontStyle: model.StyleSlabSheet}, plain)

	custom := e.ForCabinet(model.CabinetItem{CabinetStyleID: ptr(int64(0)), DoorStyle: ptr(model.StyleFivePiece)})
	assert.Equal(t, int64(0), custom.CabinetStyleID)
	assert.Equal(t, model.StyleFivePiece, custom.DoorStyle)
	assert.Equal(t, model.StyleSlabSheet, custom.DrawerFrontStyle)
}

func TestRate(t *testing.T) {
	svc := model.Service{ID: 3, HourlyRate: 65}

	none := model.Overrides{}
	org := model.Overrides{ServiceRates: map[int64]float64{3: 72}}

	assert.Equal(t, 65.0, Rate(svc, none, none, none))
	assert.Equal(t, 72.0, Rate(svc, none, none, org))
	assert.Equal(t, 80.0, Rate(svc, none, model.Overrides{ServiceRates: map[int64]float64{3: 80}}, org))
	assert.Equal(t, 0.0, Rate(svc,
		model.Overrides{ServiceRates: map[int64]float64{3: 0}},
		model.Overrides{ServiceRates: map[int64]float64{3: 80}},
		org,
	), "a zero section override is a defined rate")
}
