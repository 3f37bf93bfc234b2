package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/domain/repository"
)

type MatchRepository struct {
	pool *pgxpool.Pool
}

func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// RecordLike runs the whole like transition in one transaction serialized per
// unordered pair: an advisory lock keyed on (low, high) prevents two users
// liking each other near-simultaneously from both missing the mutual check,
// and the unique (participant_low, participant_high) constraint makes a
// duplicate conversation impossible even without the lock.
func (r *MatchRepository) RecordLike(ctx context.Context, actorID, targetID string) (*entity.LikeOutcome, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	low, high := entity.OrderedPair(actorID, targetID)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`, low, high); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()

	// Composite PK makes the like idempotent.
	if _, err := tx.Exec(ctx, `
		INSERT INTO user_likes (user_id, liked_id, created_at)
		VALUES ($1, $2, $3) ON CONFLICT DO NOTHING
	`, actorID, targetID, now); err != nil {
		return nil, err
	}

	var mutual bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_likes WHERE user_id = $1 AND liked_id = $2)
	`, targetID, actorID).Scan(&mutual); err != nil {
		return nil, err
	}

	out := &entity.LikeOutcome{Mutual: mutual}
	if mutual {
		res, err := tx.Exec(ctx, `
			INSERT INTO user_matches (user_id, matched_id, created_at)
			VALUES ($1, $2, $3), ($2, $1, $3) ON CONFLICT DO NOTHING
		`, actorID, targetID, now)
		if err != nil {
			return nil, err
		}
		out.AlreadyMatched = res.RowsAffected() == 0

		convo := &entity.Conversation{Participants: [2]string{actorID, targetID}}
		err = tx.QueryRow(ctx, `
			INSERT INTO conversations (id, participant_low, participant_high, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (participant_low, participant_high) DO NOTHING
			RETURNING id::text, created_at
		`, uuid.NewString(), low, high, now).Scan(&convo.ID, &convo.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			// Pair already owns a conversation; report the existing one.
			err = tx.QueryRow(ctx, `
				SELECT id::text, created_at FROM conversations
				WHERE participant_low = $1 AND participant_high = $2
			`, low, high).Scan(&convo.ID, &convo.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		out.Conversation = convo
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

var _ repository.MatchRepository = (*MatchRepository)(nil)
