package repository

import (
	"context"

	"github.com/emberdate/emberdate/internal/domain/entity"
)

// UserRepository defines user persistence. GetByID/GetByEmail hydrate the
// Likes and Matches id lists. Delete cascades: back-references in other
// users' likes/matches, owned messages, owned conversations and the owned
// image all go in one transaction.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id, username string, age int, bio string) error
	Candidates(ctx context.Context, userID string) ([]entity.PublicProfile, error)
	Delete(ctx context.Context, id string) error
}

// MatchRepository owns like/match state. RecordLike is atomic: it inserts the
// like idempotently, checks the reverse direction, and on mutual like writes
// both match rows and creates (or finds) the pair conversation in the same
// transaction.
type MatchRepository interface {
	RecordLike(ctx context.Context, actorID, targetID string) (*entity.LikeOutcome, error)
}

// ConversationRepository reads conversations; creation happens only inside
// MatchRepository.RecordLike.
type ConversationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]entity.Conversation, error)
}

// MessageRepository persists and lists messages.
type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]entity.Message, error)
}

// ImageRepository stores profile-picture bytes. Save replaces the user's
// previous image in place when one exists and returns the image id.
type ImageRepository interface {
	Save(ctx context.Context, userID string, img *entity.Image) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Image, error)
}
