// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDuckDBSource_ReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.csv")
	content := "id,gender,articleType,year,productDisplayName\n" +
		"1,Men,Shirts,2011,Red Cotton Shirt\n" +
		"2,Men,Jeans,2012,\n" +
		"3,Women,Watches,2016,Titan Silver Watch\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewDuckDBSource(path, "", DefaultSchema)
	if !strings.HasPrefix(src.Describe(), "duckdb:read_csv:") {
		t.Errorf("Describe() = %q", src.Describe())
	}

	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[1].Text != "Titan Silver Watch" || rows[1].Index != 1 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[0].Extra["year"] != "2011" {
		t.Errorf("year = %q, want 2011 kept as text", rows[0].Extra["year"])
	}
}

func TestDuckDBSource_Table(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.duckdb")

	db, err := sql.Open("duckdb", path)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	stmts := []string{
		`CREATE TABLE products (gender VARCHAR, season VARCHAR, productDisplayName VARCHAR)`,
		`INSERT INTO products VALUES ('Men', 'Summer', 'Blue Jeans'), (NULL, 'Fall', 'Grey Hoodie')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	rows, err := NewDuckDBSource(path, "products", DefaultSchema).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[1].Category(FieldSeason) != "Fall" {
		t.Errorf("rows[1] season = %q, want Fall", rows[1].Category(FieldSeason))
	}
	if _, ok := rows[1].Categories[FieldGender]; ok {
		t.Error("NULL gender should be missing")
	}
}
