package application

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	repo "github.com/emberdate/emberdate/internal/domain/repository"
)

// ConversationService owns message persistence/retrieval and the
// conversation-to-user resolution backing the chat list.
type ConversationService struct {
	Users    repo.UserRepository
	Convos   repo.ConversationRepository
	Messages repo.MessageRepository
	Logger   *logrus.Logger
}

func NewConversationService(users repo.UserRepository, convos repo.ConversationRepository, messages repo.MessageRepository, logger *logrus.Logger) *ConversationService {
	return &ConversationService{Users: users, Convos: convos, Messages: messages, Logger: logger}
}

// ConversationList pairs the actor's conversations with their match id list;
// the client resolves each id to a profile itself.
type ConversationList struct {
	Chats   []entity.Conversation
	Matches []string
}

func (s *ConversationService) ListConversations(ctx context.Context, actor *entity.User) (*ConversationList, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthorized
	}
	chats, err := s.Convos.ListByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	matches := actor.Matches
	if matches == nil {
		matches = []string{}
	}
	return &ConversationList{Chats: chats, Matches: matches}, nil
}

type SendMessageInput struct {
	ConversationID string
	Receiver       string
	Body           string
	Created        int64
}

// SendMessage persists a message with read=false. The sender is always the
// authenticated actor, the body must be non-empty, and both actor and
// receiver must be participants of the conversation.
func (s *ConversationService) SendMessage(ctx context.Context, actor *entity.User, in SendMessageInput) error {
	if actor == nil {
		return apperr.ErrUnauthorized
	}
	if strings.TrimSpace(in.Body) == "" {
		return apperr.ErrEmptyMessage
	}
	convo, err := s.Convos.GetByID(ctx, in.ConversationID)
	if err != nil {
		return err
	}
	if !convo.HasParticipant(actor.ID) || !convo.HasParticipant(in.Receiver) {
		return apperr.ErrNotParticipant
	}
	msg := &entity.Message{
		ConversationID: convo.ID,
		Sender:         actor.ID,
		Receiver:       in.Receiver,
		Body:           in.Body,
		Created:        in.Created,
		Read:           false,
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		s.Logger.WithError(err).WithField("conversation", convo.ID).Error("persist message failed")
		return err
	}
	return nil
}

// ListMessages returns the conversation's messages in chronological order by
// the client-supplied created timestamp, independent of store order.
func (s *ConversationService) ListMessages(ctx context.Context, actor *entity.User, conversationID string) ([]entity.Message, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthorized
	}
	convo, err := s.Convos.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !convo.HasParticipant(actor.ID) {
		return nil, apperr.ErrNotParticipant
	}
	msgs, err := s.Messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Created < msgs[j].Created })
	return msgs, nil
}
