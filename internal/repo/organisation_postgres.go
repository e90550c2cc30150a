package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/poskit/cashier/internal/models"
)

type PostgresOrganisationRepository struct {
	db *sql.DB
}

func NewPostgresOrganisationRepository(db *sql.DB) *PostgresOrganisationRepository {
	return &PostgresOrganisationRepository{db: db}
}

func (r *PostgresOrganisationRepository) GetByID(id int) (models.Organisation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var org models.Organisation
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM organisations WHERE id = $1`, id).
		Scan(&org.ID, &org.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Organisation{}, ErrOrganisationNotFound
	}
	return org, err
}

func (r *PostgresOrganisationRepository) Create(org models.Organisation) (models.Organisation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `INSERT INTO organisations (name) VALUES ($1) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, org.Name).Scan(&org.ID)
	return org, err
}
