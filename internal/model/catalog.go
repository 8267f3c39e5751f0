package model

import "sort"

// Minutes holds labor minutes keyed by service id.
type Minutes map[int64]float64

// Hours holds labor hours keyed by service id.
type Hours map[int64]float64

// Scale returns a copy of m with every value multiplied by f.
func (m Minutes) Scale(f float64) Minutes {
	out := make(Minutes, len(m))
	for id, v := range m {
		out[id] = Finite(v * f)
	}
	return out
}

// Add accumulates other into m.
func (m Minutes) Add(other Minutes) {
	for id, v := range other {
		m[id] += Finite(v)
	}
}

// Multiply returns a copy of m with each service scaled by its multiplier.
// Services without a multiplier are copied unchanged.
func (m Minutes) Multiply(multipliers map[int64]float64) Minutes {
	out := make(Minutes, len(m))
	for id, v := range m {
		if f, ok := multipliers[id]; ok {
			v *= f
		}
		out[id] = Finite(v)
	}
	return out
}

// Hours converts minutes to hours.
func (m Minutes) Hours() Hours {
	out := make(Hours, len(m))
	for id, v := range m {
		out[id] = Finite(v / 60)
	}
	return out
}

// Add accumulates other into h.
func (h Hours) Add(other Hours) {
	for id, v := range other {
		h[id] += Finite(v)
	}
}

// IDs returns the service ids present in h in ascending order.
func (h Hours) IDs() []int64 {
	ids := make([]int64, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Service is a labor service with its catalog hourly rate.
type Service struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourlyRate"`
	Active     bool    `json:"active"`
}

// MaterialKind distinguishes sheet goods from hardwood priced by the board foot.
type MaterialKind string

const (
	MaterialSheet    MaterialKind = "sheet"
	MaterialHardwood MaterialKind = "hardwood"
)

// Material is a box, face or drawer-box material. Dimensions are inches.
type Material struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Kind           MaterialKind `json:"kind"`
	SheetPrice     float64      `json:"sheetPrice"`
	SheetWidth     float64      `json:"sheetWidth"`
	SheetLength    float64      `json:"sheetLength"`
	BoardFootPrice float64      `json:"boardFootPrice"`
	Thickness      float64      `json:"thickness"`
	NeedsFinish    bool         `json:"needsFinish"`
	FinishTypeID   int64        `json:"finishTypeId"`
}

// SheetArea returns the standard sheet area in square inches.
func (m Material) SheetArea() float64 {
	return Finite(m.SheetWidth * m.SheetLength)
}

// FinishType carries per-service multipliers applied to parts that need finishing.
type FinishType struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Multipliers map[int64]float64 `json:"multipliers"`
}

// CabinetStyle scopes time anchors and decides face-frame drawer clips.
type CabinetStyle struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	FaceFrame bool   `json:"faceFrame"`
}

// HardwareKind is the catalog family of a hardware item.
type HardwareKind string

const (
	HardwareHinge HardwareKind = "hinge"
	HardwarePull  HardwareKind = "pull"
	HardwareSlide HardwareKind = "slide"
)

// Hardware is a hinge, pull or slide with its per-unit service minutes.
type Hardware struct {
	ID      int64        `json:"id"`
	Kind    HardwareKind `json:"kind"`
	Name    string       `json:"name"`
	Price   float64      `json:"price"`
	Minutes Minutes      `json:"minutes"`
}

// UnitKind decides how an accessory's calculation unit is derived.
type UnitKind string

const (
	UnitArea      UnitKind = "area"
	UnitVolume    UnitKind = "volume"
	UnitLength    UnitKind = "length"
	UnitPerimeter UnitKind = "perimeter"
	UnitCount     UnitKind = "count"
)

// Accessory is a catalog accessory. Reference dimensions and price describe the
// size the catalog price and minutes were measured at.
type Accessory struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	UnitKind            UnitKind `json:"unitKind"`
	RefWidth            float64  `json:"refWidth"`
	RefHeight           float64  `json:"refHeight"`
	RefDepth            float64  `json:"refDepth"`
	RefPrice            float64  `json:"refPrice"`
	UnitPrice           float64  `json:"unitPrice"`
	MatchesRoomMaterial bool     `json:"matchesRoomMaterial"`
	Minutes             Minutes  `json:"minutes"`
}

// LengthCatalogItem is a linear item (crown, light rail, toe kick, scribe).
// Minutes are per linear foot.
type LengthCatalogItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	PricePerFoot  float64 `json:"pricePerFoot"`
	Minutes       Minutes `json:"minutes"`
	Miter         bool    `json:"miter"`
	Cutout        bool    `json:"cutout"`
	MiterMinutes  float64 `json:"miterMinutes"`
	CutoutMinutes float64 `json:"cutoutMinutes"`
}

// PartKind names a time-anchor set.
type PartKind string

const (
	PartKindBox         PartKind = "box"
	PartKindDoor        PartKind = "door"
	PartKindDrawerFront PartKind = "drawer_front"
	PartKindFalseFront  PartKind = "false_front"
	PartKindPanel       PartKind = "panel"
	PartKindHood        PartKind = "hood"
	PartKindEndPanel    PartKind = "end_panel"
)

// AnyStyle marks an anchor eligible for every cabinet style.
const AnyStyle int64 = 0

// TimeAnchor is one measured (size, minutes) control point. Size is square feet
// for area-based kinds and cubic feet for hood anchors.
type TimeAnchor struct {
	Size    float64 `json:"size"`
	Minutes Minutes `json:"minutes"`
	StyleID int64   `json:"styleId"`
}
