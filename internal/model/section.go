package model

// FaceStyle is the finish style a face is built in.
type FaceStyle string

const (
	StyleSlabSheet    FaceStyle = "slab_sheet"
	StyleFivePiece    FaceStyle = "five_piece"
	StyleSlabHardwood FaceStyle = "slab_hardwood"
)

// FaceType is the kind of a node in a cabinet's face configuration tree.
type FaceType string

const (
	FaceDoor        FaceType = "door"
	FaceDrawerFront FaceType = "drawer_front"
	FaceFalseFront  FaceType = "false_front"
	FacePanel       FaceType = "panel"
	FaceOpen        FaceType = "open"
	FaceContainer   FaceType = "container"
	FaceReveal      FaceType = "reveal"
)

// FaceNode is one node of the face configuration tree. Containers group
// children; open and reveal nodes are not visible faces.
type FaceNode struct {
	Type     FaceType   `json:"type"`
	Width    Num        `json:"width"`
	Height   Num        `json:"height"`
	Children []FaceNode `json:"children,omitempty"`
}

// BoxPartType is the type code of a flat box part.
type BoxPartType string

const (
	PartSide           BoxPartType = "side"
	PartTop            BoxPartType = "top"
	PartBottom         BoxPartType = "bottom"
	PartBack           BoxPartType = "back"
	PartShelf          BoxPartType = "shelf"
	PartStretcher      BoxPartType = "stretcher"
	PartFiller         BoxPartType = "filler"
	PartEndPanelNosing BoxPartType = "end_panel_nosing"
)

// BoxPart is one flat part from a cabinet's parts list.
type BoxPart struct {
	Type     BoxPartType `json:"type"`
	Width    Num         `json:"width"`
	Height   Num         `json:"height"`
	Quantity Num         `json:"quantity"`
}

// HardwareSummary is the per-cabinet hardware count summary.
type HardwareSummary struct {
	Hinges         Num `json:"hinges"`
	Slides         Num `json:"slides"`
	DoorPulls      Num `json:"doorPulls"`
	DrawerPulls    Num `json:"drawerPulls"`
	AppliancePulls Num `json:"appliancePulls"`
	ShelfHoles     Num `json:"shelfHoles"`
}

// DrawerBox is a drawer box or roll-out tray inside a cabinet.
type DrawerBox struct {
	Width     Num  `json:"width"`
	Height    Num  `json:"height"`
	Depth     Num  `json:"depth"`
	Quantity  Num  `json:"quantity"`
	IsRollout bool `json:"isRollout"`
}

// CabinetType decides the extra labor a cabinet receives.
type CabinetType string

const (
	CabinetBase           CabinetType = "base"
	CabinetWall           CabinetType = "wall"
	CabinetTall           CabinetType = "tall"
	CabinetHood           CabinetType = "hood"
	CabinetEndPanel       CabinetType = "end_panel"
	CabinetAppliancePanel CabinetType = "appliance_panel"
)

// CabinetItem is a cabinet line item with its structural summaries.
type CabinetItem struct {
	ID       int64       `json:"id"`
	Type     CabinetType `json:"type"`
	Width    Num         `json:"width"`
	Height   Num         `json:"height"`
	Depth    Num         `json:"depth"`
	Quantity Num         `json:"quantity"`

	CabinetStyleID   *int64     `json:"cabinetStyleId,omitempty"`
	DoorStyle        *FaceStyle `json:"doorStyle,omitempty"`
	DrawerFrontStyle *FaceStyle `json:"drawerFrontStyle,omitempty"`

	Faces         *FaceNode       `json:"faces,omitempty"`
	BoxParts      []BoxPart       `json:"boxParts,omitempty"`
	Hardware      HardwareSummary `json:"hardware"`
	BandingLength Num             `json:"bandingLength"`
	DrawerBoxes   []DrawerBox     `json:"drawerBoxes,omitempty"`
}

// LengthItem is a linear run priced from the length catalog. Length is inches.
type LengthItem struct {
	LengthID int64 `json:"lengthId"`
	Length   Num   `json:"length"`
	Quantity Num   `json:"quantity"`
	Miters   Num   `json:"miters"`
	Cutouts  Num   `json:"cutouts"`
}

// AccessoryItem is an accessory line with user-entered dimensions.
type AccessoryItem struct {
	AccessoryID int64 `json:"accessoryId"`
	Width       Num   `json:"width"`
	Height      Num   `json:"height"`
	Depth       Num   `json:"depth"`
	Quantity    Num   `json:"quantity"`
}

// OtherItem is a free-form priced line.
type OtherItem struct {
	Name     string `json:"name"`
	Price    Num    `json:"price"`
	Quantity Num    `json:"quantity"`
}

// Overrides is one tier of configurable selections. A nil pointer or a missing
// map key means "not set here"; zero values are set.
type Overrides struct {
	CabinetStyleID      *int64     `json:"cabinetStyleId,omitempty"`
	DoorStyle           *FaceStyle `json:"doorStyle,omitempty"`
	DrawerFrontStyle    *FaceStyle `json:"drawerFrontStyle,omitempty"`
	BoxMaterialID       *int64     `json:"boxMaterialId,omitempty"`
	FaceMaterialID      *int64     `json:"faceMaterialId,omitempty"`
	DrawerBoxMaterialID *int64     `json:"drawerBoxMaterialId,omitempty"`
	HingeID             *int64     `json:"hingeId,omitempty"`
	DoorPullID          *int64     `json:"doorPullId,omitempty"`
	DrawerPullID        *int64     `json:"drawerPullId,omitempty"`
	AppliancePullID     *int64     `json:"appliancePullId,omitempty"`
	SlideID             *int64     `json:"slideId,omitempty"`

	ServiceRates map[int64]float64 `json:"serviceRates,omitempty"`
}

// Rate returns the rate override for a service, or nil when this tier has none.
func (o Overrides) Rate(serviceID int64) *float64 {
	v, ok := o.ServiceRates[serviceID]
	if !ok {
		return nil
	}
	return &v
}

// Molding flags for hardwood faces.
type Molding struct {
	Inside  bool `json:"inside"`
	Outside bool `json:"outside"`
}

// Section is the unit of estimation.
type Section struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	Name      string `json:"name"`
	Quantity  Num    `json:"quantity"`

	Overrides Overrides `json:"overrides"`
	Molding   Molding   `json:"molding"`

	ProfitPercent     Num `json:"profitPercent"`
	CommissionPercent Num `json:"commissionPercent"`
	DiscountPercent   Num `json:"discountPercent"`

	AddHours         map[int64]Num  `json:"addHours,omitempty"`
	PartsIncluded    PartsIncluded  `json:"partsIncluded,omitempty"`
	ServicesIncluded map[int64]bool `json:"servicesIncluded,omitempty"`

	Cabinets    []CabinetItem   `json:"cabinets,omitempty"`
	Lengths     []LengthItem    `json:"lengths,omitempty"`
	Accessories []AccessoryItem `json:"accessories,omitempty"`
	Others      []OtherItem     `json:"others,omitempty"`
}

// ServiceIncluded reports whether a service counts toward the labor total.
// Only an explicit false excludes it.
func (s Section) ServiceIncluded(serviceID int64) bool {
	v, ok := s.ServicesIncluded[serviceID]
	return !ok || v
}
