package model

// Category is a priced cost category of a section.
type Category string

const (
	CatBox         Category = "boxTotal"
	CatDoor        Category = "doorTotal"
	CatDrawerFront Category = "drawerFrontTotal"
	CatFalseFront  Category = "falseFrontTotal"
	CatPanel       Category = "panelTotal"
	CatOtherFace   Category = "otherFaceTotal"
	CatDrawerBox   Category = "drawerBoxTotal"
	CatRollOut     Category = "rollOutTotal"
	CatHinges      Category = "hingesTotal"
	CatSlides      Category = "slidesTotal"
	CatPulls       Category = "pullsTotal"
	CatAccessories Category = "accessoriesTotal"
	CatLengths     Category = "lengthsTotal"
	CatOther       Category = "otherTotal"
)

// Categories lists every category in display order. Face sub-categories come
// before the other-face catch-all.
func Categories() []Category {
	return []Category{
		CatBox,
		CatDoor, CatDrawerFront, CatFalseFront, CatPanel, CatOtherFace,
		CatDrawerBox, CatRollOut,
		CatHinges, CatSlides, CatPulls,
		CatAccessories, CatLengths, CatOther,
	}
}

// Toggleable reports whether a category can be excluded by the user.
func (c Category) Toggleable() bool {
	return c != CatOtherFace
}

// PartsIncluded maps categories to inclusion toggles. Missing keys are included.
type PartsIncluded map[Category]bool

// Included reports whether c counts toward the parts total.
func (p PartsIncluded) Included(c Category) bool {
	if !c.Toggleable() {
		return true
	}
	v, ok := p[c]
	return !ok || v
}
