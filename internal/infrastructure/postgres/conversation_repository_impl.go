package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/domain/repository"
)

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	c := &entity.Conversation{}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, participant_low::text, participant_high::text, created_at
		FROM conversations WHERE id = $1
	`, id).Scan(&c.ID, &c.Participants[0], &c.Participants[1], &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConversationRepository) ListByParticipant(ctx context.Context, userID string) ([]entity.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, participant_low::text, participant_high::text, created_at
		FROM conversations
		WHERE participant_low = $1 OR participant_high = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Conversation, 0)
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.ConversationRepository = (*ConversationRepository)(nil)
