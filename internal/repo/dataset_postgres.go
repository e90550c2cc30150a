package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/poskit/cashier/internal/datamap"
	"github.com/poskit/cashier/internal/models"
)

// PostgresDatasetRepository stores datasets in a single table with a UNIQUE
// name and a version counter. The data column uses the json type (not jsonb)
// so the stored key order survives round trips.
type PostgresDatasetRepository struct {
	db *sql.DB
}

func NewPostgresDatasetRepository(db *sql.DB) *PostgresDatasetRepository {
	return &PostgresDatasetRepository{db: db}
}

func (r *PostgresDatasetRepository) Resolve(org models.Organisation, purpose string) (models.Dataset, error) {
	name := DatasetName(org, purpose)

	ds, err := r.findByName(name)
	if err == nil {
		return ds, nil
	}
	if !errors.Is(err, ErrDatasetNotFound) {
		return models.Dataset{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// ON CONFLICT DO NOTHING keeps creation idempotent: a concurrent first
	// caller may win the insert, in which case we fall through to re-read
	// the row it created.
	query := `INSERT INTO datasets (name, organisation_id, data, version)
		VALUES ($1, $2, '{}', 1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`
	var id int
	err = r.db.QueryRowContext(ctx, query, name, org.ID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return r.findByName(name)
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("create dataset %s: %w", name, err)
	}

	return models.Dataset{
		ID:             id,
		Name:           name,
		OrganisationID: org.ID,
		Data:           datamap.New(),
		Version:        1,
	}, nil
}

func (r *PostgresDatasetRepository) Find(org models.Organisation, purpose string) (models.Dataset, error) {
	return r.findByName(DatasetName(org, purpose))
}

func (r *PostgresDatasetRepository) findByName(name string) (models.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `SELECT id, name, organisation_id, data, version FROM datasets WHERE name = $1`
	var ds models.Dataset
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&ds.ID, &ds.Name, &ds.OrganisationID, &raw, &ds.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dataset{}, ErrDatasetNotFound
	}
	if err != nil {
		return models.Dataset{}, err
	}

	ds.Data = datamap.New()
	if err := json.Unmarshal(raw, ds.Data); err != nil {
		return models.Dataset{}, fmt.Errorf("decode dataset %s: %w", name, err)
	}
	return ds, nil
}

func (r *PostgresDatasetRepository) Replace(update DatasetUpdate) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceInTx(ctx, tx, update); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresDatasetRepository) ReplaceAll(updates []DatasetUpdate) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, update := range updates {
		if err := replaceInTx(ctx, tx, update); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func replaceInTx(ctx context.Context, tx *sql.Tx, update DatasetUpdate) error {
	raw, err := json.Marshal(update.Data)
	if err != nil {
		return fmt.Errorf("encode dataset %d: %w", update.DatasetID, err)
	}

	query := `UPDATE datasets SET data = $1, version = version + 1 WHERE id = $2 AND version = $3`
	res, err := tx.ExecContext(ctx, query, raw, update.DatasetID, update.Version)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
