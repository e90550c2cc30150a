package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/poskit/cashier/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(id int) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	var orgID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, organisation_id FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &orgID)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	u.OrganisationID = int(orgID.Int64)
	return u, err
}

func (r *PostgresUserRepository) GetByUsername(username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	var orgID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, organisation_id FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &orgID)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	u.OrganisationID = int(orgID.Int64)
	return u, err
}

func (r *PostgresUserRepository) CreateUser(u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var orgID sql.NullInt64
	if u.OrganisationID != 0 {
		orgID = sql.NullInt64{Int64: int64(u.OrganisationID), Valid: true}
	}
	query := `INSERT INTO users (username, password_hash, organisation_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, orgID, time.Now().UTC()).Scan(&u.ID)
	return u, err
}
