package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	m "guut.dev/pkg/guut/internal/model"
)

// CatalogStore persists the mutant catalog of a module.
type CatalogStore interface {
	Save(ctx context.Context, path m.Path, specs []m.MutantSpec) error
	Load(ctx context.Context, path m.Path) ([]m.MutantSpec, error)
}

// NewCatalogStore picks the store for path: SQLite for .db, .sqlite and
// .sqlite3 files, YAML otherwise.
func NewCatalogStore(path m.Path) CatalogStore {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteCatalogStore{}
	default:
		return &YAMLCatalogStore{}
	}
}

type catalogFile struct {
	Mutants []m.MutantSpec `yaml:"mutants"`
}

// YAMLCatalogStore stores the catalog as a YAML document.
type YAMLCatalogStore struct{}

// Save writes specs to path.
func (s *YAMLCatalogStore) Save(_ context.Context, path m.Path, specs []m.MutantSpec) error {
	data, err := yaml.Marshal(catalogFile{Mutants: specs})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), data, 0o600)
}

// Load reads specs from path.
func (s *YAMLCatalogStore) Load(_ context.Context, path m.Path) ([]m.MutantSpec, error) {
	// #nosec G304 - path comes from the command line
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}

	return file.Mutants, nil
}

const catalogSchema = `CREATE TABLE IF NOT EXISTS mutation_specs (
	job_id        TEXT PRIMARY KEY,
	module_path   TEXT NOT NULL,
	operator_name TEXT NOT NULL,
	occurrence    INTEGER NOT NULL,
	start_pos_row INTEGER NOT NULL,
	end_pos_row   INTEGER NOT NULL
)`

// SQLiteCatalogStore stores the catalog in the mutation_specs table of a
// SQLite database.
type SQLiteCatalogStore struct{}

func openCatalogDB(ctx context.Context, path m.Path) (*sql.DB, error) {
	db, err := sql.Open("sqlite", string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if _, err := db.ExecContext(ctx, catalogSchema); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create schema: %w", err), db.Close())
	}

	return db, nil
}

// Save replaces the rows of mutation_specs with specs.
func (s *SQLiteCatalogStore) Save(ctx context.Context, path m.Path, specs []m.MutantSpec) (err error) {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	db, err := openCatalogDB(ctx, path)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, db.Close()) }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM mutation_specs`); err != nil {
		return errors.Join(err, tx.Rollback())
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO mutation_specs
		(job_id, module_path, operator_name, occurrence, start_pos_row, end_pos_row)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Join(err, tx.Rollback())
	}

	defer func() { _ = stmt.Close() }()

	for _, spec := range specs {
		_, err := stmt.ExecContext(ctx,
			string(spec.ID()), spec.TargetPath, spec.OperatorName, spec.Occurrence, spec.LineStart, spec.LineEnd)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to insert %s: %w", spec.ID(), err), tx.Rollback())
		}
	}

	return tx.Commit()
}

// Load reads all rows of mutation_specs in a stable order.
func (s *SQLiteCatalogStore) Load(ctx context.Context, path m.Path) (specs []m.MutantSpec, err error) {
	if _, err := os.Stat(string(path)); err != nil {
		return nil, err
	}

	db, err := openCatalogDB(ctx, path)
	if err != nil {
		return nil, err
	}

	defer func() { err = errors.Join(err, db.Close()) }()

	rows, err := db.QueryContext(ctx, `SELECT module_path, operator_name, occurrence, start_pos_row, end_pos_row
		FROM mutation_specs ORDER BY module_path, start_pos_row, operator_name, occurrence`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var spec m.MutantSpec
		if err := rows.Scan(&spec.TargetPath, &spec.OperatorName, &spec.Occurrence, &spec.LineStart, &spec.LineEnd); err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	return specs, rows.Err()
}
