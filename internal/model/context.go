package model

import "github.com/caarlos0/env/v9"

// Settings holds the shop's tuned business constants. Linear values are inches,
// money is dollars, rates ending in Percent are percentages.
type Settings struct {
	Kerf              float64 `env:"KERF" envDefault:"0.125" json:"kerf"`
	AllowRotation     bool    `env:"ALLOW_ROTATION" envDefault:"false" json:"allowRotation"`
	MinBilledSheets   float64 `env:"MIN_BILLED_SHEETS" envDefault:"0.5" json:"minBilledSheets"`
	OversizePremium   float64 `env:"OVERSIZE_PREMIUM" envDefault:"1.5" json:"oversizePremium"`
	OversizeMinHeight float64 `env:"OVERSIZE_MIN_HEIGHT" envDefault:"108" json:"oversizeMinHeight"`
	// MaxPieces bounds the pieces packed per sheet request. Zero disables the bound.
	MaxPieces int `env:"MAX_PIECES" envDefault:"2000" json:"maxPieces"`

	CutPricePerFoot      float64 `env:"CUT_PRICE_PER_FOOT" envDefault:"0.35" json:"cutPricePerFoot"`
	EdgeBandPricePerFoot float64 `env:"EDGE_BAND_PRICE_PER_FOOT" envDefault:"0.45" json:"edgeBandPricePerFoot"`
	SetupCostPerSheet    float64 `env:"SETUP_COST_PER_SHEET" envDefault:"8" json:"setupCostPerSheet"`
	HingeBoreCost        float64 `env:"HINGE_BORE_COST" envDefault:"1.25" json:"hingeBoreCost"`
	SlideDrillCost       float64 `env:"SLIDE_DRILL_COST" envDefault:"0.75" json:"slideDrillCost"`
	ShelfHoleCost        float64 `env:"SHELF_HOLE_COST" envDefault:"0.1" json:"shelfHoleCost"`

	TaxRate         float64 `env:"TAX_RATE" envDefault:"0.0825" json:"taxRate"`
	DeliveryPercent float64 `env:"DELIVERY_PERCENT" envDefault:"3" json:"deliveryPercent"`
	CardFeePercent  float64 `env:"CARD_FEE_PERCENT" envDefault:"3" json:"cardFeePercent"`

	DrawerWasteFactor    float64 `env:"DRAWER_WASTE_FACTOR" envDefault:"1.15" json:"drawerWasteFactor"`
	DrawerSheetIncrement float64 `env:"DRAWER_SHEET_INCREMENT" envDefault:"0.25" json:"drawerSheetIncrement"`
	DrawerBaseLabor      float64 `env:"DRAWER_BASE_LABOR" envDefault:"18" json:"drawerBaseLabor"`
	DrawerNotchCost      float64 `env:"DRAWER_NOTCH_COST" envDefault:"2.5" json:"drawerNotchCost"`
	ClipCostFaceFrame    float64 `env:"CLIP_COST_FACE_FRAME" envDefault:"4.5" json:"clipCostFaceFrame"`
	ClipCostFrameless    float64 `env:"CLIP_COST_FRAMELESS" envDefault:"3" json:"clipCostFrameless"`
	RolloutScoopCost     float64 `env:"ROLLOUT_SCOOP_COST" envDefault:"6" json:"rolloutScoopCost"`

	InsideMoldingPerFoot  float64 `env:"INSIDE_MOLDING_PER_FOOT" envDefault:"1.5" json:"insideMoldingPerFoot"`
	OutsideMoldingPerFoot float64 `env:"OUTSIDE_MOLDING_PER_FOOT" envDefault:"2.25" json:"outsideMoldingPerFoot"`
	AccessoryWasteFactor  float64 `env:"ACCESSORY_WASTE_FACTOR" envDefault:"1.2" json:"accessoryWasteFactor"`

	ShopServiceID     int64   `env:"SHOP_SERVICE_ID" envDefault:"1" json:"shopServiceId"`
	FinishServiceID   int64   `env:"FINISH_SERVICE_ID" envDefault:"2" json:"finishServiceId"`
	InstallServiceID  int64   `env:"INSTALL_SERVICE_ID" envDefault:"3" json:"installServiceId"`
	InstallSetupHours float64 `env:"INSTALL_SETUP_HOURS" envDefault:"1" json:"installSetupHours"`

	RoundTo float64 `env:"ROUND_TO" envDefault:"5" json:"roundTo"`
}

// DefaultSettings returns the settings defined by the envDefault tags.
func DefaultSettings() Settings {
	var s Settings
	_ = env.ParseWithOptions(&s, env.Options{Environment: map[string]string{}})
	return s
}

// Context bundles every catalog and reference collection a calculation reads.
// It is assembled once per calculation and never mutated by the engine.
type Context struct {
	Settings Settings `json:"settings"`
	Services []Service `json:"services"`

	BoxMaterials       map[int64]Material          `json:"boxMaterials"`
	FaceMaterials      map[int64]Material          `json:"faceMaterials"`
	DrawerBoxMaterials map[int64]Material          `json:"drawerBoxMaterials"`
	FinishTypes        map[int64]FinishType        `json:"finishTypes"`
	CabinetStyles      map[int64]CabinetStyle      `json:"cabinetStyles"`
	Hinges             map[int64]Hardware          `json:"hinges"`
	Pulls              map[int64]Hardware          `json:"pulls"`
	Slides             map[int64]Hardware          `json:"slides"`
	Accessories        map[int64]Accessory         `json:"accessories"`
	Lengths            map[int64]LengthCatalogItem `json:"lengths"`
	Anchors            map[PartKind][]TimeAnchor   `json:"anchors"`

	// Project and Defaults are the second and third override tiers.
	Project  Overrides `json:"project"`
	Defaults Overrides `json:"defaults"`
}

// FinishMultipliers returns the per-service multipliers for a material that
// needs finishing, or nil.
func (c *Context) FinishMultipliers(m Material) map[int64]float64 {
	if !m.NeedsFinish {
		return nil
	}
	ft, ok := c.FinishTypes[m.FinishTypeID]
	if !ok {
		return nil
	}
	return ft.Multipliers
}

// Service looks up a service by id.
func (c *Context) Service(id int64) (Service, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
