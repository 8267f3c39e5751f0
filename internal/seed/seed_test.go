package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/cabinetry/internal/db"
	"github.com/Simplici0/cabinetry/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := Config{SampleProject: "Sample kitchen"}
	want := len(services) + len(finishTypes) + len(cabinetStyles) + len(materials) +
		len(hardware) + len(accessories) + len(lengthItems) + len(anchors) + 2

	for i := 0; i < 10; i++ {
		stats, err := Run(database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != want {
				t.Fatalf("expected %d inserts in first run, got %d", want, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM services WHERE active = 1`, nil, len(services))
	assertCount(t, database, `SELECT COUNT(*) FROM materials WHERE role = ?`, "face", 2)
	assertCount(t, database, `SELECT COUNT(*) FROM time_anchors WHERE part_kind = ?`, "box", 3)
	assertCount(t, database, `SELECT COUNT(*) FROM org_defaults WHERE id = 1`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM projects WHERE name = ?`, "Sample kitchen", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM materials WHERE kind = ? AND finish_type_id IS NULL`, []any{"sheet"}, 2)
}

func TestRunKeepsEditedRows(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed-edit.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()
	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	if _, err := Run(database, Config{}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if _, err := database.Exec(`UPDATE services SET hourly_rate = 99 WHERE id = 1`); err != nil {
		t.Fatalf("edit service: %v", err)
	}
	if _, err := Run(database, Config{}); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM services WHERE id = 1 AND hourly_rate = 99`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM projects`, nil, 0)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
