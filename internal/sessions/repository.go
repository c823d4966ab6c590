package sessions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotus-studio/lotus/internal/platform/db"
	"github.com/lotus-studio/lotus/internal/shared"
)

// Repository defines persistence operations for sessions and their rosters.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Session, error)
	FindAll(ctx context.Context) ([]Session, error)
	Create(ctx context.Context, session *Session) (*Session, error)
	Update(ctx context.Context, session *Session) (*Session, error)
	Delete(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) error
}

// PGRepository implements Repository using PostgreSQL. Roster uniqueness is
// backed by the (session_id, user_id) primary key, so two racing joins for
// the same pair cannot both commit.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const sessionColumns = `id, name, date, description, teacher_id, created_at, updated_at`

// FindByID fetches a session with its roster in join order.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Session, error) {
	var s Session
	err := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Date, &s.Description, &s.InstructorID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	s.Users, err = r.roster(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindAll returns every session, rosters included.
func (r *PGRepository) FindAll(ctx context.Context) ([]Session, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Session
	index := make(map[int64]int)
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Name, &s.Date, &s.Description, &s.InstructorID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		index[s.ID] = len(result)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	parts, err := r.pool.Query(ctx,
		`SELECT session_id, user_id FROM session_participants ORDER BY joined_at, user_id`)
	if err != nil {
		return nil, err
	}
	defer parts.Close()

	for parts.Next() {
		var sessionID, userID int64
		if err := parts.Scan(&sessionID, &userID); err != nil {
			return nil, err
		}
		if i, ok := index[sessionID]; ok {
			result[i].Users = append(result[i].Users, userID)
		}
	}
	return result, parts.Err()
}

// Create inserts a session and its initial roster in one transaction.
func (r *PGRepository) Create(ctx context.Context, session *Session) (*Session, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO sessions (name, date, description, teacher_id)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at, updated_at`,
			session.Name, session.Date, session.Description, session.InstructorID)
		if err := row.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return err
		}
		return insertRoster(ctx, tx, session.ID, session.Users)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Update rewrites the session row and replaces the roster in one
// transaction. Absent ids yield ErrNotFound.
func (r *PGRepository) Update(ctx context.Context, session *Session) (*Session, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE sessions
			 SET name = $2, date = $3, description = $4, teacher_id = $5, updated_at = now()
			 WHERE id = $1
			 RETURNING created_at, updated_at`,
			session.ID, session.Name, session.Date, session.Description, session.InstructorID)
		if err := row.Scan(&session.CreatedAt, &session.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM session_participants WHERE session_id = $1`, session.ID); err != nil {
			return err
		}
		return insertRoster(ctx, tx, session.ID, session.Users)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session; the roster goes with it via ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddParticipant appends one account to the roster. A duplicate insert loses
// at the primary key and surfaces as ErrAlreadyParticipating.
func (r *PGRepository) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO session_participants (session_id, user_id) VALUES ($1, $2)`,
		sessionID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrAlreadyParticipating
		}
		return err
	}
	return nil
}

// RemoveParticipant deletes one roster entry; zero rows affected means the
// account was not participating.
func (r *PGRepository) RemoveParticipant(ctx context.Context, sessionID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM session_participants WHERE session_id = $1 AND user_id = $2`,
		sessionID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotParticipating
	}
	return nil
}

func (r *PGRepository) roster(ctx context.Context, sessionID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM session_participants WHERE session_id = $1 ORDER BY joined_at, user_id`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

func insertRoster(ctx context.Context, tx pgx.Tx, sessionID int64, users []int64) error {
	for _, userID := range users {
		if _, err := tx.Exec(ctx,
			`INSERT INTO session_participants (session_id, user_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			sessionID, userID); err != nil {
			return err
		}
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
