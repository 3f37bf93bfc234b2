package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userSelect = `
	SELECT u.id::text, u.email, u.password_hash, u.username, u.age, u.bio,
	       COALESCE(u.image_id::text, ''), u.registered_at,
	       COALESCE((SELECT array_agg(l.liked_id::text ORDER BY l.created_at)
	                 FROM user_likes l WHERE l.user_id = u.id), '{}'),
	       COALESCE((SELECT array_agg(m.matched_id::text ORDER BY m.created_at)
	                 FROM user_matches m WHERE m.user_id = u.id), '{}')
	FROM users u
`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Username, &u.Age, &u.Bio,
		&u.ImageID, &u.RegisteredAt, &u.Likes, &u.Matches); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, username, age, bio, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Email, u.Password, u.Username, u.Age, u.Bio, u.RegisteredAt)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+`WHERE u.id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+`WHERE u.email = $1`, email))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, username string, age int, bio string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET username = $1, age = $2, bio = $3 WHERE id = $4
	`, username, age, bio, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Candidates returns everyone except the user and anyone they already liked
// or matched, in store-native order.
func (r *UserRepository) Candidates(ctx context.Context, userID string) ([]entity.PublicProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.username, u.age, u.bio, COALESCE(u.image_id::text, ''), u.registered_at
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (SELECT 1 FROM user_likes l WHERE l.user_id = $1 AND l.liked_id = u.id)
		  AND NOT EXISTS (SELECT 1 FROM user_matches m WHERE m.user_id = $1 AND m.matched_id = u.id)
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.PublicProfile, 0)
	for rows.Next() {
		var p entity.PublicProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.Age, &p.Bio, &p.ImageID, &p.RegisteredAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes the user and every reference to them in one transaction:
// likes/matches in both directions, messages they sent or received,
// conversations they participate in, and their image.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, q := range []string{
		`DELETE FROM user_likes WHERE user_id = $1 OR liked_id = $1`,
		`DELETE FROM user_matches WHERE user_id = $1 OR matched_id = $1`,
		`DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`,
		`DELETE FROM conversations WHERE participant_low = $1 OR participant_high = $1`,
		`DELETE FROM images WHERE id = (SELECT image_id FROM users WHERE id = $1)`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}

	res, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return tx.Commit(ctx)
}

var _ repository.UserRepository = (*UserRepository)(nil)
