package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/cabinetry/internal/model"
)

// LoadContext assembles the calculation context of a project: every catalog,
// the active services, the time anchors, and the project and organization
// override tiers. settings are the shop constants from configuration.
func (s *Store) LoadContext(ctx context.Context, projectID int64, settings model.Settings) (model.Context, error) {
	c := model.Context{
		Settings:           settings,
		BoxMaterials:       map[int64]model.Material{},
		FaceMaterials:      map[int64]model.Material{},
		DrawerBoxMaterials: map[int64]model.Material{},
		FinishTypes:        map[int64]model.FinishType{},
		CabinetStyles:      map[int64]model.CabinetStyle{},
		Hinges:             map[int64]model.Hardware{},
		Pulls:              map[int64]model.Hardware{},
		Slides:             map[int64]model.Hardware{},
		Accessories:        map[int64]model.Accessory{},
		Lengths:            map[int64]model.LengthCatalogItem{},
		Anchors:            map[model.PartKind][]model.TimeAnchor{},
	}

	var projectBody string
	err := s.db.QueryRowContext(ctx, `SELECT overrides FROM projects WHERE id = ?`, projectID).Scan(&projectBody)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Context{}, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return model.Context{}, fmt.Errorf("query project %d: %w", projectID, err)
	}
	if err := decodeJSON(projectBody, &c.Project); err != nil {
		return model.Context{}, fmt.Errorf("decode project overrides: %w", err)
	}

	loaders := []func(context.Context, *model.Context) error{
		s.loadDefaults,
		s.loadServices,
		s.loadFinishTypes,
		s.loadMaterials,
		s.loadCabinetStyles,
		s.loadHardware,
		s.loadAccessories,
		s.loadLengths,
		s.loadAnchors,
	}
	for _, load := range loaders {
		if err := load(ctx, &c); err != nil {
			return model.Context{}, err
		}
	}
	return c, nil
}

func (s *Store) loadDefaults(ctx context.Context, c *model.Context) error {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT overrides FROM org_defaults WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query org defaults: %w", err)
	}
	if err := decodeJSON(body, &c.Defaults); err != nil {
		return fmt.Errorf("decode org defaults: %w", err)
	}
	return nil
}

func (s *Store) loadServices(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, hourly_rate, active FROM services WHERE active = 1 ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.HourlyRate, &svc.Active); err != nil {
			return fmt.Errorf("scan service: %w", err)
		}
		c.Services = append(c.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate services: %w", err)
	}
	return nil
}

func (s *Store) loadFinishTypes(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, multipliers FROM finish_types`)
	if err != nil {
		return fmt.Errorf("query finish types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ft   model.FinishType
			body string
		)
		if err := rows.Scan(&ft.ID, &ft.Name, &body); err != nil {
			return fmt.Errorf("scan finish type: %w", err)
		}
		if err := decodeJSON(body, &ft.Multipliers); err != nil {
			return fmt.Errorf("decode finish type %d multipliers: %w", ft.ID, err)
		}
		c.FinishTypes[ft.ID] = ft
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate finish types: %w", err)
	}
	return nil
}

func (s *Store) loadMaterials(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, name, kind, sheet_price, sheet_width, sheet_length,
		       board_foot_price, thickness, needs_finish, COALESCE(finish_type_id, 0)
		FROM materials
		WHERE active = 1
	`)
	if err != nil {
		return fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m    model.Material
			role string
		)
		if err := rows.Scan(&m.ID, &role, &m.Name, &m.Kind, &m.SheetPrice, &m.SheetWidth, &m.SheetLength,
			&m.BoardFootPrice, &m.Thickness, &m.NeedsFinish, &m.FinishTypeID); err != nil {
			return fmt.Errorf("scan material: %w", err)
		}
		switch role {
		case "box":
			c.BoxMaterials[m.ID] = m
		case "face":
			c.FaceMaterials[m.ID] = m
		case "drawer_box":
			c.DrawerBoxMaterials[m.ID] = m
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate materials: %w", err)
	}
	return nil
}

func (s *Store) loadCabinetStyles(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, face_frame FROM cabinet_styles`)
	if err != nil {
		return fmt.Errorf("query cabinet styles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs model.CabinetStyle
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.FaceFrame); err != nil {
			return fmt.Errorf("scan cabinet style: %w", err)
		}
		c.CabinetStyles[cs.ID] = cs
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cabinet styles: %w", err)
	}
	return nil
}

func (s *Store) loadHardware(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, name, price, minutes FROM hardware`)
	if err != nil {
		return fmt.Errorf("query hardware: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			h    model.Hardware
			body string
		)
		if err := rows.Scan(&h.ID, &h.Kind, &h.Name, &h.Price, &body); err != nil {
			return fmt.Errorf("scan hardware: %w", err)
		}
		if err := decodeJSON(body, &h.Minutes); err != nil {
			return fmt.Errorf("decode hardware %d minutes: %w", h.ID, err)
		}
		switch h.Kind {
		case model.HardwareHinge:
			c.Hinges[h.ID] = h
		case model.HardwarePull:
			c.Pulls[h.ID] = h
		case model.HardwareSlide:
			c.Slides[h.ID] = h
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate hardware: %w", err)
	}
	return nil
}

func (s *Store) loadAccessories(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, unit_kind, ref_width, ref_height, ref_depth, ref_price,
		       unit_price, matches_room_material, minutes
		FROM accessories
	`)
	if err != nil {
		return fmt.Errorf("query accessories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a    model.Accessory
			body string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.UnitKind, &a.RefWidth, &a.RefHeight, &a.RefDepth, &a.RefPrice,
			&a.UnitPrice, &a.MatchesRoomMaterial, &body); err != nil {
			return fmt.Errorf("scan accessory: %w", err)
		}
		if err := decodeJSON(body, &a.Minutes); err != nil {
			return fmt.Errorf("decode accessory %d minutes: %w", a.ID, err)
		}
		c.Accessories[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate accessories: %w", err)
	}
	return nil
}

func (s *Store) loadLengths(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_per_foot, miter, cutout, miter_minutes, cutout_minutes, minutes
		FROM length_items
	`)
	if err != nil {
		return fmt.Errorf("query length items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l    model.LengthCatalogItem
			body string
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.PricePerFoot, &l.Miter, &l.Cutout, &l.MiterMinutes, &l.CutoutMinutes, &body); err != nil {
			return fmt.Errorf("scan length item: %w", err)
		}
		if err := decodeJSON(body, &l.Minutes); err != nil {
			return fmt.Errorf("decode length item %d minutes: %w", l.ID, err)
		}
		c.Lengths[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate length items: %w", err)
	}
	return nil
}

func (s *Store) loadAnchors(ctx context.Context, c *model.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT part_kind, style_id, size, minutes FROM time_anchors ORDER BY part_kind, size, style_id`)
	if err != nil {
		return fmt.Errorf("query time anchors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind model.PartKind
			a    model.TimeAnchor
			body string
		)
		if err := rows.Scan(&kind, &a.StyleID, &a.Size, &body); err != nil {
			return fmt.Errorf("scan time anchor: %w", err)
		}
		if err := decodeJSON(body, &a.Minutes); err != nil {
			return fmt.Errorf("decode %s anchor minutes: %w", kind, err)
		}
		c.Anchors[kind] = append(c.Anchors[kind], a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate time anchors: %w", err)
	}
	return nil
}

func decodeJSON(body string, v any) error {
	if body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), v)
}
