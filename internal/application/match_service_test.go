package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/infrastructure/memory"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func seedUser(t *testing.T, store *memory.Store, username string) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:    username + "@example.com",
		Password: "hash",
		Username: username,
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestSubmitLikeRequiresActor(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())

	_, err := svc.SubmitLike(context.Background(), nil, "someone")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestSubmitLikeRejectsSelf(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")

	_, err := svc.SubmitLike(context.Background(), a, a.ID)
	require.ErrorIs(t, err, apperr.ErrSelfLike)
}

func TestSubmitLikeUnknownTarget(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")

	_, err := svc.SubmitLike(context.Background(), a, "no-such-user")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmitLikeOneWay(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")

	res, err := svc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.Equal(t, "bob", res.LikedUsername)
	require.Nil(t, res.Convo)

	// the like is recorded but no match state exists yet
	freshA, err := store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.Contains(t, freshA.Likes, b.ID)
	require.Empty(t, freshA.Matches)
}

func TestSubmitLikeMutualCreatesSymmetricMatch(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")

	_, err := svc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)

	res, err := svc.SubmitLike(context.Background(), b, a.ID)
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.NotNil(t, res.Convo)
	require.Equal(t, "alice", res.Match.Username)
	require.Equal(t, b.ID, res.User.ID)
	require.Contains(t, res.User.Matches, a.ID)

	freshA, err := store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	freshB, err := store.Users().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.Contains(t, freshA.Matches, b.ID)
	require.Contains(t, freshB.Matches, a.ID)

	convos, err := store.Conversations().ListByParticipant(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, convos, 1)
	require.Equal(t, res.Convo.ID, convos[0].ID)
}

func TestSubmitLikeRepeatedIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")

	_, err := svc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)
	first, err := svc.SubmitLike(context.Background(), b, a.ID)
	require.NoError(t, err)

	// liking again after the match must not create another conversation
	again, err := svc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)
	require.True(t, again.Matched)
	require.Equal(t, first.Convo.ID, again.Convo.ID)

	freshA, err := store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.Equal(t, []string{b.ID}, freshA.Likes)
	require.Equal(t, []string{b.ID}, freshA.Matches)

	convos, err := store.Conversations().ListByParticipant(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, convos, 1)
}

func TestUnmatchedExcludesSelfLikedAndMatched(t *testing.T) {
	store := memory.NewStore()
	svc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")
	c := seedUser(t, store, "carol")
	d := seedUser(t, store, "dave")

	// a likes b (one way), a and c are matched
	_, err := svc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)
	_, err = svc.SubmitLike(context.Background(), c, a.ID)
	require.NoError(t, err)
	freshA, err := store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	_, err = svc.SubmitLike(context.Background(), freshA, c.ID)
	require.NoError(t, err)

	freshA, err = store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	got, err := svc.Unmatched(context.Background(), freshA)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, d.ID, got[0].ID)
}
