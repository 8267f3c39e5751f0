// Package seed loads a starter shop catalog so a fresh database can price a
// section out of the box.
package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Simplici0/cabinetry/internal/model"
)

// Config contains the values required by startup seed.
type Config struct {
	// SampleProject, when set, creates a project with this name and no overrides.
	SampleProject string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type service struct {
	id   int64
	name string
	rate float64
}

var services = []service{
	{1, "Shop", 65},
	{2, "Finish", 55},
	{3, "Install", 60},
}

type finishType struct {
	id          int64
	name        string
	multipliers map[int64]float64
}

var finishTypes = []finishType{
	{1, "Paint", map[int64]float64{1: 1.1, 2: 1.5}},
	{2, "Clear coat", map[int64]float64{2: 1.2}},
}

type cabinetStyle struct {
	id        int64
	name      string
	faceFrame bool
}

var cabinetStyles = []cabinetStyle{
	{1, "Face frame", true},
	{2, "Frameless", false},
}

type material struct {
	id   int64
	role string
	m    model.Material
}

var materials = []material{
	{1, "box", model.Material{Name: "Prefinished maple ply", Kind: model.MaterialSheet, SheetPrice: 85, SheetWidth: 48, SheetLength: 96, Thickness: 0.75}},
	{2, "face", model.Material{Name: "Paint grade MDF", Kind: model.MaterialSheet, SheetPrice: 70, SheetWidth: 49, SheetLength: 97, Thickness: 0.75, NeedsFinish: true, FinishTypeID: 1}},
	{3, "face", model.Material{Name: "White oak", Kind: model.MaterialHardwood, BoardFootPrice: 9.5, Thickness: 0.75, NeedsFinish: true, FinishTypeID: 2}},
	{4, "drawer_box", model.Material{Name: "Baltic birch 1/2", Kind: model.MaterialSheet, SheetPrice: 75, SheetWidth: 60, SheetLength: 60, Thickness: 0.5}},
}

var hardware = []model.Hardware{
	{ID: 1, Kind: model.HardwareHinge, Name: "Soft close hinge", Price: 6.5, Minutes: model.Minutes{1: 4, 3: 6}},
	{ID: 2, Kind: model.HardwarePull, Name: "Bar pull 128mm", Price: 9, Minutes: model.Minutes{3: 5}},
	{ID: 3, Kind: model.HardwareSlide, Name: "Undermount slide 21in", Price: 38, Minutes: model.Minutes{1: 8, 3: 10}},
}

var accessories = []model.Accessory{
	{ID: 1, Name: "Roll-out tray", UnitKind: model.UnitArea, RefWidth: 21, RefHeight: 22, RefPrice: 45, MatchesRoomMaterial: true, Minutes: model.Minutes{1: 30}},
	{ID: 2, Name: "Lazy susan", UnitKind: model.UnitCount, UnitPrice: 120, Minutes: model.Minutes{3: 20}},
}

var lengthItems = []model.LengthCatalogItem{
	{ID: 1, Name: "Crown molding", PricePerFoot: 6.5, Miter: true, MiterMinutes: 10, Minutes: model.Minutes{1: 3, 2: 2, 3: 4}},
	{ID: 2, Name: "Toe kick", PricePerFoot: 2, Cutout: true, CutoutMinutes: 15, Minutes: model.Minutes{3: 2}},
}

type anchor struct {
	kind model.PartKind
	a    model.TimeAnchor
}

var anchors = []anchor{
	{model.PartKindBox, model.TimeAnchor{Size: 4, Minutes: model.Minutes{1: 20}}},
	{model.PartKindBox, model.TimeAnchor{Size: 8, Minutes: model.Minutes{1: 35}}},
	{model.PartKindBox, model.TimeAnchor{Size: 16, Minutes: model.Minutes{1: 60}}},
	{model.PartKindDoor, model.TimeAnchor{Size: 2, Minutes: model.Minutes{1: 15, 2: 10}}},
	{model.PartKindDoor, model.TimeAnchor{Size: 5, Minutes: model.Minutes{1: 25, 2: 20}}},
	{model.PartKindDoor, model.TimeAnchor{Size: 10, Minutes: model.Minutes{1: 40, 2: 35}}},
	{model.PartKindDrawerFront, model.TimeAnchor{Size: 1, Minutes: model.Minutes{1: 10, 2: 6}}},
	{model.PartKindDrawerFront, model.TimeAnchor{Size: 3, Minutes: model.Minutes{1: 16, 2: 12}}},
	{model.PartKindFalseFront, model.TimeAnchor{Size: 1, Minutes: model.Minutes{1: 8, 2: 5}}},
	{model.PartKindPanel, model.TimeAnchor{Size: 4, Minutes: model.Minutes{1: 15, 2: 15}}},
	{model.PartKindPanel, model.TimeAnchor{Size: 12, Minutes: model.Minutes{1: 30, 2: 35}}},
	{model.PartKindHood, model.TimeAnchor{Size: 10, Minutes: model.Minutes{1: 240, 2: 120}}},
	{model.PartKindHood, model.TimeAnchor{Size: 25, Minutes: model.Minutes{1: 420, 2: 200}}},
	{model.PartKindEndPanel, model.TimeAnchor{Size: 6, Minutes: model.Minutes{1: 20, 2: 20}}},
	{model.PartKindEndPanel, model.TimeAnchor{Size: 16, Minutes: model.Minutes{1: 35, 2: 40}}},
}

func int64p(v int64) *int64 { return &v }

func stylep(v model.FaceStyle) *model.FaceStyle { return &v }

var orgDefaults = model.Overrides{
	CabinetStyleID:      int64p(1),
	DoorStyle:           stylep(model.StyleSlabSheet),
	DrawerFrontStyle:    stylep(model.StyleSlabSheet),
	BoxMaterialID:       int64p(1),
	FaceMaterialID:      int64p(2),
	DrawerBoxMaterialID: int64p(4),
	HingeID:             int64p(1),
	DoorPullID:          int64p(2),
	DrawerPullID:        int64p(2),
	SlideID:             int64p(3),
}

// Run executes the startup seed in an idempotent way. Rows that already exist
// are left untouched so shop edits survive restarts.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	steps := []func(*sql.Tx, *Stats) error{
		ensureServices,
		ensureFinishTypes,
		ensureCabinetStyles,
		ensureMaterials,
		ensureHardware,
		ensureAccessories,
		ensureLengthItems,
		ensureAnchors,
		ensureOrgDefaults,
	}
	for _, step := range steps {
		if err := step(tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	if err := ensureProject(tx, cfg.SampleProject, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// ensureByID inserts a row unless table already holds id.
func ensureByID(tx *sql.Tx, stats *Stats, table string, id int64, insert string, args ...any) error {
	var exists bool
	if err := tx.QueryRow(fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`, table), id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s %d existence: %w", table, id, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(insert, append([]any{id}, args...)...); err != nil {
		return fmt.Errorf("insert %s %d: %w", table, id, err)
	}
	stats.Inserts++
	return nil
}

func ensureServices(tx *sql.Tx, stats *Stats) error {
	for _, s := range services {
		if err := ensureByID(tx, stats, "services", s.id,
			`INSERT INTO services (id, name, hourly_rate, active) VALUES (?, ?, ?, 1)`, s.name, s.rate); err != nil {
			return err
		}
	}
	return nil
}

func ensureFinishTypes(tx *sql.Tx, stats *Stats) error {
	for _, ft := range finishTypes {
		body, err := json.Marshal(ft.multipliers)
		if err != nil {
			return fmt.Errorf("encode finish type %q: %w", ft.name, err)
		}
		if err := ensureByID(tx, stats, "finish_types", ft.id,
			`INSERT INTO finish_types (id, name, multipliers) VALUES (?, ?, ?)`, ft.name, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func ensureCabinetStyles(tx *sql.Tx, stats *Stats) error {
	for _, cs := range cabinetStyles {
		if err := ensureByID(tx, stats, "cabinet_styles", cs.id,
			`INSERT INTO cabinet_styles (id, name, face_frame) VALUES (?, ?, ?)`, cs.name, cs.faceFrame); err != nil {
			return err
		}
	}
	return nil
}

func ensureMaterials(tx *sql.Tx, stats *Stats) error {
	for _, row := range materials {
		m := row.m
		var finishType any
		if m.FinishTypeID != 0 {
			finishType = m.FinishTypeID
		}
		if err := ensureByID(tx, stats, "materials", row.id, `
			INSERT INTO materials (
				id, role, name, kind, sheet_price, sheet_width, sheet_length,
				board_foot_price, thickness, needs_finish, finish_type_id, active
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		`, row.role, m.Name, string(m.Kind), m.SheetPrice, m.SheetWidth, m.SheetLength,
			m.BoardFootPrice, m.Thickness, m.NeedsFinish, finishType); err != nil {
			return err
		}
	}
	return nil
}

func ensureHardware(tx *sql.Tx, stats *Stats) error {
	for _, h := range hardware {
		body, err := json.Marshal(h.Minutes)
		if err != nil {
			return fmt.Errorf("encode hardware %q minutes: %w", h.Name, err)
		}
		if err := ensureByID(tx, stats, "hardware", h.ID,
			`INSERT INTO hardware (id, kind, name, price, minutes) VALUES (?, ?, ?, ?, ?)`,
			string(h.Kind), h.Name, h.Price, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func ensureAccessories(tx *sql.Tx, stats *Stats) error {
	for _, a := range accessories {
		body, err := json.Marshal(a.Minutes)
		if err != nil {
			return fmt.Errorf("encode accessory %q minutes: %w", a.Name, err)
		}
		if err := ensureByID(tx, stats, "accessories", a.ID, `
			INSERT INTO accessories (
				id, name, unit_kind, ref_width, ref_height, ref_depth, ref_price,
				unit_price, matches_room_material, minutes
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.Name, string(a.UnitKind), a.RefWidth, a.RefHeight, a.RefDepth, a.RefPrice,
			a.UnitPrice, a.MatchesRoomMaterial, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func ensureLengthItems(tx *sql.Tx, stats *Stats) error {
	for _, l := range lengthItems {
		body, err := json.Marshal(l.Minutes)
		if err != nil {
			return fmt.Errorf("encode length item %q minutes: %w", l.Name, err)
		}
		if err := ensureByID(tx, stats, "length_items", l.ID, `
			INSERT INTO length_items (
				id, name, price_per_foot, miter, cutout, miter_minutes, cutout_minutes, minutes
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, l.Name, l.PricePerFoot, l.Miter, l.Cutout, l.MiterMinutes, l.CutoutMinutes, string(body)); err != nil {
			return err
		}
	}
	return nil
}

func ensureAnchors(tx *sql.Tx, stats *Stats) error {
	for _, row := range anchors {
		var exists bool
		if err := tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1
				FROM time_anchors
				WHERE part_kind = ? AND style_id = ? AND size = ?
			)
		`, string(row.kind), row.a.StyleID, row.a.Size).Scan(&exists); err != nil {
			return fmt.Errorf("check %s anchor existence: %w", row.kind, err)
		}
		if exists {
			continue
		}

		body, err := json.Marshal(row.a.Minutes)
		if err != nil {
			return fmt.Errorf("encode %s anchor minutes: %w", row.kind, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO time_anchors (part_kind, style_id, size, minutes)
			VALUES (?, ?, ?, ?)
		`, string(row.kind), row.a.StyleID, row.a.Size, string(body)); err != nil {
			return fmt.Errorf("insert %s anchor at %v: %w", row.kind, row.a.Size, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureOrgDefaults(tx *sql.Tx, stats *Stats) error {
	body, err := json.Marshal(orgDefaults)
	if err != nil {
		return fmt.Errorf("encode org defaults: %w", err)
	}
	return ensureByID(tx, stats, "org_defaults", 1, `INSERT INTO org_defaults (id, overrides) VALUES (?, ?)`, string(body))
}

func ensureProject(tx *sql.Tx, name string, stats *Stats) error {
	if name == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM projects WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check sample project existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO projects (name, overrides) VALUES (?, '{}')`, name); err != nil {
		return fmt.Errorf("insert sample project: %w", err)
	}
	stats.Inserts++
	return nil
}
