package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/domain/repository"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, receiver_id, body, created_ms, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, m.ConversationID, m.Sender, m.Receiver, m.Body, m.Created, m.Read)
	return err
}

// ListByConversation orders by the client-supplied creation timestamp so the
// result is chronological regardless of physical insert order.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]entity.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, receiver_id::text, body, created_ms, read
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_ms ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Message, 0)
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Receiver, &m.Body, &m.Created, &m.Read); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
