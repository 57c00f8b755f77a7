package models

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

/*
Column Mismatch Report Usage:

ColumnReport compares each entity's table against the columns its Go model
maps. Run the server with GENERATE_COLUMN_REPORT=true to print it and exit.

It lists, per table:
- columns that exist in the database but not in the Go model (Extra)
- columns the Go model maps that the table lacks (Missing)
*/

// Entities returns a zero value of every persisted entity, in migration order.
func Entities() []any {
	return []any{
		&Research{},
		&Project{},
		&Publication{},
		&GalleryItem{},
	}
}

// Migrate creates or extends the four entity tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Entities()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}
	return nil
}

// ColumnMismatch describes how one table differs from its model.
type ColumnMismatch struct {
	Table   string
	Exists  bool
	Missing []string
	Extra   []string
}

func (m ColumnMismatch) Clean() bool {
	return m.Exists && len(m.Missing) == 0 && len(m.Extra) == 0
}

// ColumnReport generates a report of database columns that aren't accounted
// for in the Go models, and model columns the database lacks.
func ColumnReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch

	for _, entity := range Entities() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(entity); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", entity, err)
		}

		mismatch := ColumnMismatch{Table: stmt.Schema.Table}
		if !db.Migrator().HasTable(entity) {
			mismatch.Missing = append(mismatch.Missing, stmt.Schema.DBNames...)
			report = append(report, mismatch)
			continue
		}
		mismatch.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(entity)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", stmt.Schema.Table, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, columnType := range columnTypes {
			dbColumns = append(dbColumns, columnType.Name())
		}

		mismatch.Extra = difference(dbColumns, stmt.Schema.DBNames)
		mismatch.Missing = difference(stmt.Schema.DBNames, dbColumns)
		report = append(report, mismatch)
	}

	return report, nil
}

// difference returns the entries of a that are not in b, sorted.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, name := range b {
		inB[name] = true
	}

	var diff []string
	for _, name := range a {
		if !inB[name] {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}
