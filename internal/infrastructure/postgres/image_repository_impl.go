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

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// Save stores the image bytes and points the user at them. A user who already
// has an image gets it replaced in place, keeping the image id stable.
func (r *ImageRepository) Save(ctx context.Context, userID string, img *entity.Image) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var existing string
	err = tx.QueryRow(ctx, `SELECT COALESCE(image_id::text, '') FROM users WHERE id = $1`, userID).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if existing != "" {
		if _, err := tx.Exec(ctx, `
			UPDATE images SET name = $1, mimetype = $2, data = $3 WHERE id = $4
		`, img.Name, img.Mimetype, img.Data, existing); err != nil {
			return "", err
		}
		img.ID = existing
	} else {
		img.ID = uuid.NewString()
		if _, err := tx.Exec(ctx, `
			INSERT INTO images (id, name, mimetype, data) VALUES ($1, $2, $3, $4)
		`, img.ID, img.Name, img.Mimetype, img.Data); err != nil {
			return "", err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET image_id = $1 WHERE id = $2`, img.ID, userID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return img.ID, nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*entity.Image, error) {
	img := &entity.Image{}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, mimetype, data FROM images WHERE id = $1
	`, id).Scan(&img.ID, &img.Name, &img.Mimetype, &img.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

var _ repository.ImageRepository = (*ImageRepository)(nil)
