// Package store is the data-access collaborator of the estimating engine: it
// assembles calculation contexts from the catalog tables and persists sections
// and result snapshots.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/pricing"
)

// ErrNotFound is returned when a project, section or result does not exist.
var ErrNotFound = errors.New("not found")

// Store reads and writes the sqlite tables.
type Store struct {
	db *sql.DB
}

// New wraps an open database. Migrations must already be applied.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateProject inserts a project with its override tier and returns its id.
func (s *Store) CreateProject(ctx context.Context, name string, overrides model.Overrides) (int64, error) {
	body, err := json.Marshal(overrides)
	if err != nil {
		return 0, fmt.Errorf("encode project overrides: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO projects (name, overrides) VALUES (?, ?)`, name, string(body))
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read project id: %w", err)
	}
	return id, nil
}

// SaveSection inserts a section when its id is zero and replaces it otherwise.
// The whole section, toggles and manual hours included, is stored.
func (s *Store) SaveSection(ctx context.Context, sec model.Section) (model.Section, error) {
	if err := s.projectExists(ctx, sec.ProjectID); err != nil {
		return model.Section{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Section{}, fmt.Errorf("begin section transaction: %w", err)
	}
	saved, err := saveSection(ctx, tx, sec)
	if err != nil {
		_ = tx.Rollback()
		return model.Section{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Section{}, fmt.Errorf("commit section %d: %w", saved.ID, err)
	}
	return saved, nil
}

// saveSection inserts a placeholder row for a new section so the stored body
// can carry its id, then writes the body.
func saveSection(ctx context.Context, tx *sql.Tx, sec model.Section) (model.Section, error) {
	if sec.ID == 0 {
		res, err := tx.ExecContext(ctx, `INSERT INTO sections (project_id, name, body) VALUES (?, ?, '{}')`, sec.ProjectID, sec.Name)
		if err != nil {
			return model.Section{}, fmt.Errorf("insert section: %w", err)
		}
		if sec.ID, err = res.LastInsertId(); err != nil {
			return model.Section{}, fmt.Errorf("read section id: %w", err)
		}
	}

	body, err := json.Marshal(sec)
	if err != nil {
		return model.Section{}, fmt.Errorf("encode section: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE sections
		SET project_id = ?, name = ?, body = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, sec.ProjectID, sec.Name, string(body), sec.ID)
	if err != nil {
		return model.Section{}, fmt.Errorf("update section %d: %w", sec.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Section{}, fmt.Errorf("section %d: %w", sec.ID, ErrNotFound)
	}
	return sec, nil
}

// GetSection loads a stored section.
func (s *Store) GetSection(ctx context.Context, id int64) (model.Section, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM sections WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Section{}, fmt.Errorf("section %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Section{}, fmt.Errorf("query section %d: %w", id, err)
	}

	var sec model.Section
	if err := json.Unmarshal([]byte(body), &sec); err != nil {
		return model.Section{}, fmt.Errorf("decode section %d: %w", id, err)
	}
	sec.ID = id
	return sec, nil
}

// Snapshot is a stored calculation result.
type Snapshot struct {
	ID        string         `json:"id"`
	SectionID int64          `json:"sectionId"`
	CreatedAt time.Time      `json:"createdAt"`
	Result    pricing.Result `json:"result"`
}

// SaveResult stores a result snapshot under a fresh id.
func (s *Store) SaveResult(ctx context.Context, res pricing.Result) (Snapshot, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		SectionID: res.SectionID,
		CreatedAt: time.Now().UTC(),
		Result:    res,
	}
	body, err := json.Marshal(res)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO section_results (id, section_id, unit_price, total_price, display_price, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.SectionID, res.Totals.UnitPrice, res.Totals.TotalPrice, res.Totals.DisplayPrice,
		string(body), snap.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert result for section %d: %w", res.SectionID, err)
	}
	return snap, nil
}

// LatestResult returns the most recent snapshot of a section.
func (s *Store) LatestResult(ctx context.Context, sectionID int64) (Snapshot, error) {
	var (
		snap    Snapshot
		body    string
		created string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, section_id, body, created_at
		FROM section_results
		WHERE section_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, sectionID).Scan(&snap.ID, &snap.SectionID, &body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("result for section %d: %w", sectionID, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query result for section %d: %w", sectionID, err)
	}

	if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Snapshot{}, fmt.Errorf("parse result time: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &snap.Result); err != nil {
		return Snapshot{}, fmt.Errorf("decode result %s: %w", snap.ID, err)
	}
	return snap, nil
}

func (s *Store) projectExists(ctx context.Context, id int64) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check project %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return nil
}
