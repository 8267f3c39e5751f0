// Package resolve implements the item > project > organization override chain.
package resolve

import "github.com/Simplici0/cabinetry/internal/model"

// Value returns the first defined value of item, parent and grandparent, or
// fallback when none is defined. Only nil falls through: zero and false are
// defined values.
func Value[T any](item, parent, grandparent *T, fallback T) T {
	return First(fallback, item, parent, grandparent)
}

// First returns the first non-nil value in chain, or fallback.
func First[T any](fallback T, chain ...*T) T {
	for _, v := range chain {
		if v != nil {
			return *v
		}
	}
	return fallback
}

// Hard fallbacks used when no tier defines a selection.
const (
	FallbackDoorStyle        = model.StyleSlabSheet
	FallbackDrawerFrontStyle = model.StyleSlabSheet
)

// Effective is the flattened view of style, material and hardware selections
// after applying section > project > organization resolution. Ids of zero mean
// nothing is selected.
type Effective struct {
	CabinetStyleID      int64           `json:"cabinetStyleId"`
	DoorStyle           model.FaceStyle `json:"doorStyle"`
	DrawerFrontStyle    model.FaceStyle `json:"drawerFrontStyle"`
	BoxMaterialID       int64           `json:"boxMaterialId"`
	FaceMaterialID      int64           `json:"faceMaterialId"`
	DrawerBoxMaterialID int64           `json:"drawerBoxMaterialId"`
	HingeID             int64           `json:"hingeId"`
	DoorPullID          int64           `json:"doorPullId"`
	DrawerPullID        int64           `json:"drawerPullId"`
	AppliancePullID     int64           `json:"appliancePullId"`
	SlideID             int64           `json:"slideId"`
}

// Defaults resolves every selection of a section against the project and
// organization tiers.
func Defaults(section, project, org model.Overrides) Effective {
	e := Effective{
		CabinetStyleID:      Value(section.CabinetStyleID, project.CabinetStyleID, org.CabinetStyleID, 0),
		DoorStyle:           Value(section.DoorStyle, project.DoorStyle, org.DoorStyle, FallbackDoorStyle),
		DrawerFrontStyle:    Value(section.DrawerFrontStyle, project.DrawerFrontStyle, org.DrawerFrontStyle, FallbackDrawerFrontStyle),
		BoxMaterialID:       Value(section.BoxMaterialID, project.BoxMaterialID, org.BoxMaterialID, 0),
		FaceMaterialID:      Value(section.FaceMaterialID, project.FaceMaterialID, org.FaceMaterialID, 0),
		DrawerBoxMaterialID: Value(section.DrawerBoxMaterialID, project.DrawerBoxMaterialID, org.DrawerBoxMaterialID, 0),
		HingeID:             Value(section.HingeID, project.HingeID, org.HingeID, 0),
		DoorPullID:          Value(section.DoorPullID, project.DoorPullID, org.DoorPullID, 0),
		DrawerPullID:        Value(section.DrawerPullID, project.DrawerPullID, org.DrawerPullID, 0),
		SlideID:             Value(section.SlideID, project.SlideID, org.SlideID, 0),
	}
	// Appliance pulls fall back to the door pull selection.
	e.AppliancePullID = Value(section.AppliancePullID, project.AppliancePullID, org.AppliancePullID, e.DoorPullID)
	return e
}

// Cabinet is the per-cabinet view of the style selections.
type Cabinet struct {
	CabinetStyleID   int64
	DoorStyle        model.FaceStyle
	DrawerFrontStyle model.FaceStyle
}

// ForCabinet applies a cabinet's own overrides on top of the section view.
func (e Effective) ForCabinet(item model.CabinetItem) Cabinet {
	return Cabinet{
		CabinetStyleID:   First(e.CabinetStyleID, item.CabinetStyleID),
		DoorStyle:        First(e.DoorStyle, item.DoorStyle),
		DrawerFrontStyle: First(e.DrawerFrontStyle, item.DrawerFrontStyle),
	}
}

// Rate resolves a service's hourly rate: section, project and organization
// overrides, then the catalog default.
func Rate(svc model.Service, section, project, org model.Overrides) float64 {
	return model.Finite(Value(section.Rate(svc.ID), project.Rate(svc.ID), org.Rate(svc.ID), svc.HourlyRate))
}
