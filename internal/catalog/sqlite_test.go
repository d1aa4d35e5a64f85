// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func writeSQLiteCatalog(t *testing.T, createSQL string, inserts ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(createSQL); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, stmt := range inserts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return path
}

func TestSQLiteSource_Load(t *testing.T) {
	path := writeSQLiteCatalog(t,
		`CREATE TABLE styles (id INTEGER, gender TEXT, articleType TEXT, year INTEGER, productDisplayName TEXT)`,
		`INSERT INTO styles VALUES (1, 'Men', 'Shirts', 2011, 'Red Cotton Shirt')`,
		`INSERT INTO styles VALUES (2, NULL, 'Jeans', 2012, 'Blue Jeans')`,
		`INSERT INTO styles VALUES (3, 'Women', 'Tops', 2013, NULL)`,
		`INSERT INTO styles VALUES (4, 'Women', 'Watches', NULL, 'Titan Silver Watch')`,
	)

	src := NewSQLiteSource(path, "styles", DefaultSchema)
	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (NULL text dropped)", len(rows))
	}
	if rows[2].Index != 2 || rows[2].Text != "Titan Silver Watch" {
		t.Errorf("rows[2] = %+v, want reindexed watch row", rows[2])
	}
	if _, ok := rows[1].Categories[FieldGender]; ok {
		t.Error("NULL gender should be missing")
	}
	if rows[0].Extra["id"] != "1" || rows[0].Extra["year"] != "2011" {
		t.Errorf("rows[0].Extra = %v, want integer columns rendered as text", rows[0].Extra)
	}
}

func TestSQLiteSource_Errors(t *testing.T) {
	path := writeSQLiteCatalog(t, `CREATE TABLE styles (id INTEGER, gender TEXT)`)

	t.Run("missing text column", func(t *testing.T) {
		_, err := NewSQLiteSource(path, "styles", DefaultSchema).Load(context.Background())
		if !errors.Is(err, ErrMissingTextColumn) {
			t.Errorf("Load() error = %v, want ErrMissingTextColumn", err)
		}
	})

	t.Run("invalid table name", func(t *testing.T) {
		_, err := NewSQLiteSource(path, "styles--", DefaultSchema).Load(context.Background())
		if !errors.Is(err, ErrInvalidTable) {
			t.Errorf("Load() error = %v, want ErrInvalidTable", err)
		}
	})
}
