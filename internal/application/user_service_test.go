package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/infrastructure/memory"
	"github.com/emberdate/emberdate/pkg/helpers"
)

func newUserService(store *memory.Store) *UserService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(store.Users(), store.Images(), jwt, quietLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := newUserService(store)

	err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password!1",
	})
	require.NoError(t, err)

	token, userID, err := svc.Login(context.Background(), "alice@example.com", "Password!1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, userID)

	// the token carries the email claim
	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)

	// password is stored hashed, never verbatim
	u, err := store.Users().GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotEqual(t, "Password!1", u.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	svc := newUserService(store)

	in := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "Password!1"}
	require.NoError(t, svc.Register(context.Background(), in))

	in.Username = "impostor"
	err := svc.Register(context.Background(), in)
	require.ErrorIs(t, err, apperr.ErrEmailInUse)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := memory.NewStore()
	svc := newUserService(store)
	require.NoError(t, svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "Password!1",
	}))

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "Password!1")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	store := memory.NewStore()
	svc := newUserService(store)
	u := seedUser(t, store, "alice")

	err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{
		Username: "alice2", Age: 30, Bio: "hello",
	})
	require.NoError(t, err)

	fresh, err := svc.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice2", fresh.Username)
	require.Equal(t, 30, fresh.Age)
	require.Equal(t, "hello", fresh.Bio)
}

func TestUploadImageReplacesInPlace(t *testing.T) {
	store := memory.NewStore()
	svc := newUserService(store)
	u := seedUser(t, store, "alice")

	id1, err := svc.UploadImage(context.Background(), u.ID, &entity.Image{
		Name: "a.png", Mimetype: "image/png", Data: []byte("one"),
	})
	require.NoError(t, err)

	id2, err := svc.UploadImage(context.Background(), u.ID, &entity.Image{
		Name: "b.png", Mimetype: "image/png", Data: []byte("two"),
	})
	require.NoError(t, err)
	require.Equal(t, id1, id2, "image id stays stable across uploads")

	img, err := svc.GetImage(context.Background(), id1)
	require.NoError(t, err)
	require.Equal(t, []byte("two"), img.Data)
}

func TestDeleteIsSelfOnly(t *testing.T) {
	store := memory.NewStore()
	svc := newUserService(store)
	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")

	err := svc.Delete(context.Background(), a, b.ID)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	err = svc.Delete(context.Background(), nil, a.ID)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

// Deleting a user removes every reference to them: back-references in other
// users' like/match lists, shared conversations and their messages, and the
// stored image.
func TestDeleteCascades(t *testing.T) {
	store := memory.NewStore()
	userSvc := newUserService(store)
	matchSvc := NewMatchService(store.Users(), store.Matches(), quietLogger())
	chatSvc := newChatService(store)

	a := seedUser(t, store, "alice")
	b := seedUser(t, store, "bob")

	_, err := matchSvc.SubmitLike(context.Background(), a, b.ID)
	require.NoError(t, err)
	res, err := matchSvc.SubmitLike(context.Background(), b, a.ID)
	require.NoError(t, err)
	require.NoError(t, chatSvc.SendMessage(context.Background(), a, SendMessageInput{
		ConversationID: res.Convo.ID, Receiver: b.ID, Body: "hi", Created: 1,
	}))
	imgID, err := userSvc.UploadImage(context.Background(), a.ID, &entity.Image{
		Name: "a.png", Mimetype: "image/png", Data: []byte("img"),
	})
	require.NoError(t, err)

	freshA, err := store.Users().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NoError(t, userSvc.Delete(context.Background(), freshA, a.ID))

	_, err = store.Users().GetByID(context.Background(), a.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	freshB, err := store.Users().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotContains(t, freshB.Likes, a.ID)
	require.NotContains(t, freshB.Matches, a.ID)

	convos, err := store.Conversations().ListByParticipant(context.Background(), b.ID)
	require.NoError(t, err)
	require.Empty(t, convos)

	_, err = store.Images().GetByID(context.Background(), imgID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
