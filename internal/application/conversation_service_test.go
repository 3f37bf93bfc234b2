package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/infrastructure/memory"
)

// matchedPair seeds two users and matches them, returning both plus their
// conversation.
func matchedPair(t *testing.T, store *memory.Store) (*entity.User, *entity.User, *entity.Conversation) {
	t.Helper()
	matchSvc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")
	_, err := matchSvc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)
	res, err := matchSvc.SubmitLike(context.Background(), b, a.ID)
	require.NoError(t, err)
	return a, b, res.Convo
}

func newChatService(store *memory.Store) *ConversationService {
	return NewConversationService(store.Users(), store.Conversations(), store.Messages(), quietLogger())
}

func TestListConversations(t *testing.T) {
	store := memory.NewStore()
	svc := newChatService(store)
	a, b, convo := matchedPair(t, store)

	freshA, err := store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	list, err := svc.ListConversations(context.Background(), freshA)
	require.NoError(t, err)
	require.Len(t, list.Chats, 1)
	require.Equal(t, convo.ID, list.Chats[0].ID)
	require.Equal(t, []string{b.ID}, list.Matches)
}

func TestListConversationsEmptyMatchesIsNotNil(t *testing.T) {
	store := memory.NewStore()
	svc := newChatService(store)
	a := seedUser(t, store, "alice")

	list, err := svc.ListConversations(context.Background(), a)
	require.NoError(t, err)
	require.NotNil(t, list.Matches)
	require.Empty(t, list.Matches)
}

func TestSendMessageValidation(t *testing.T) {
	store := memory.NewStore()
	svc := newChatService(store)
	a, b, convo := matchedPair(t, store)
	outsider := seedUser(t, store, "carol")

	err := svc.SendMessage(context.Background(), nil, SendMessageInput{ConversationID: convo.ID, Receiver: b.ID, Body: "hi"})
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	err = svc.SendMessage(context.Background(), a, SendMessageInput{ConversationID: convo.ID, Receiver: b.ID, Body: "   "})
	require.ErrorIs(t, err, apperr.ErrEmptyMessage)

	err = svc.SendMessage(context.Background(), a, SendMessageInput{ConversationID: "missing", Receiver: b.ID, Body: "hi"})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.SendMessage(context.Background(), outsider, SendMessageInput{ConversationID: convo.ID, Receiver: b.ID, Body: "hi"})
	require.ErrorIs(t, err, apperr.ErrNotParticipant)

	err = svc.SendMessage(context.Background(), a, SendMessageInput{ConversationID: convo.ID, Receiver: outsider.ID, Body: "hi"})
	require.ErrorIs(t, err, apperr.ErrNotParticipant)
}

func TestSendMessageSenderIsAlwaysActor(t *testing.T) {
	store := memory.NewStore()
	svc := newChatService(store)
	a, b, convo := matchedPair(t, store)

	err := svc.SendMessage(context.Background(), a, SendMessageInput{
		ConversationID: convo.ID,
		Receiver:       b.ID,
		Body:           "hello",
		Created:        42,
	})
	require.NoError(t, err)

	msgs, err := svc.ListMessages(context.Background(), a, convo.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, a.ID, msgs[0].Sender)
	require.Equal(t, b.ID, msgs[0].Receiver)
	require.False(t, msgs[0].Read)
	require.Equal(t, int64(42), msgs[0].Created)
}

// Message order must follow the client-supplied created timestamps, not the
// order the store saw the writes.
func TestListMessagesSortsByCreated(t *testing.T) {
	store := memory.NewStore()
	svc := newChatService(store)
	a, b, convo := matchedPair(t, store)

	for _, created := range []int64{30, 10, 20} {
		err := svc.SendMessage(context.Background(), a, SendMessageInput{
			ConversationID: convo.ID,
			Receiver:       b.ID,
			Body:           "m",
			Created:        created,
		})
		require.NoError(t, err)
	}

	msgs, err := svc.ListMessages(context.Background(), b, convo.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, int64(10), msgs[0].Created)
	require.Equal(t, int64(20), msgs[1].Created)
	require.Equal(t, int64(30), msgs[2].Created)
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	store := memory.NewStore()
	svc := newChatService(store)
	_, _, convo := matchedPair(t, store)
	outsider := seedUser(t, store, "carol")

	_, err := svc.ListMessages(context.Background(), outsider, convo.ID)
	require.ErrorIs(t, err, apperr.ErrNotParticipant)
}
