// Package store handles SQLite persistence of named datasets.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/statsview/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

// Store wraps SQLite access for datasets.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			name TEXT PRIMARY KEY,
			full_scale REAL NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dataset_values (
			dataset TEXT NOT NULL,
			idx INTEGER NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (dataset, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_datasets_updated_at ON datasets(updated_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveDataset creates or replaces a dataset and its values.
func (s *Store) SaveDataset(ctx context.Context, ds model.Dataset) (err error) {
	name := strings.TrimSpace(ds.Name)
	if name == "" {
		return fmt.Errorf("dataset name is empty")
	}
	now := ds.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (name, full_scale, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET full_scale = excluded.full_scale, updated_at = excluded.updated_at`,
		name,
		ds.Full,
		now.UTC().Format(time.RFC3339Nano),
		now.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM dataset_values WHERE dataset = ?`, name); err != nil {
		return err
	}

	if len(ds.Values) > 0 {
		stmt, perr := tx.PrepareContext(ctx, `INSERT INTO dataset_values (dataset, idx, value) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, v := range ds.Values {
			if _, err = stmt.ExecContext(ctx, name, i, v); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// GetDataset loads a dataset with its values in insertion order.
func (s *Store) GetDataset(ctx context.Context, name string) (model.Dataset, error) {
	ds := model.Dataset{Name: name}
	var createdAt, updatedAt string
	row := s.db.QueryRowContext(ctx, `SELECT full_scale, created_at, updated_at FROM datasets WHERE name = ?`, name)
	if err := row.Scan(&ds.Full, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return model.Dataset{}, err
	}
	var err error
	if ds.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Dataset{}, err
	}
	if ds.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return model.Dataset{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT value FROM dataset_values WHERE dataset = ? ORDER BY idx ASC`, name)
	if err != nil {
		return model.Dataset{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return model.Dataset{}, err
		}
		ds.Values = append(ds.Values, v)
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// ListDatasets returns every dataset summary ordered by name.
func (s *Store) ListDatasets(ctx context.Context) ([]model.DatasetSummary, error) {
	query := `SELECT d.name, d.full_scale, d.updated_at, COUNT(v.idx), COALESCE(SUM(v.value), 0)
		FROM datasets d
		LEFT JOIN dataset_values v ON v.dataset = d.name
		GROUP BY d.name
		ORDER BY d.name ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.DatasetSummary
	for rows.Next() {
		var sum model.DatasetSummary
		var updatedAt string
		if err := rows.Scan(&sum.Name, &sum.Full, &updatedAt, &sum.Count, &sum.Sum); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, err
		}
		sum.UpdatedAt = parsed
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteDataset removes a dataset and its values.
func (s *Store) DeleteDataset(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		err = fmt.Errorf("%w: %s", ErrNotFound, name)
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM dataset_values WHERE dataset = ?`, name); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}
