package instructors

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotus-studio/lotus/internal/shared"
)

// Repository defines persistence operations for instructors.
type Repository interface {
	FindAll(ctx context.Context) ([]Instructor, error)
	FindByID(ctx context.Context, id int64) (*Instructor, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindAll returns every instructor ordered by id.
func (r *PGRepository) FindAll(ctx context.Context) ([]Instructor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, last_name, first_name, created_at, updated_at FROM teachers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Instructor
	for rows.Next() {
		var t Instructor
		if err := rows.Scan(&t.ID, &t.LastName, &t.FirstName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// FindByID fetches an instructor by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Instructor, error) {
	var t Instructor
	err := r.pool.QueryRow(ctx,
		`SELECT id, last_name, first_name, created_at, updated_at FROM teachers WHERE id = $1`, id).
		Scan(&t.ID, &t.LastName, &t.FirstName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

var _ Repository = (*PGRepository)(nil)
