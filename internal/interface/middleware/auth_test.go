package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/emberdate/emberdate/internal/domain/entity"
	"github.com/emberdate/emberdate/internal/infrastructure/memory"
	"github.com/emberdate/emberdate/pkg/helpers"
)

func newAuthedEngine(t *testing.T) (*gin.Engine, *memory.Store, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	r.GET("/whoami", Auth(store.Users(), jwt), func(c *gin.Context) {
		u := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	return r, store, jwt
}

func whoami(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthResolvesUserFromToken(t *testing.T) {
	r, store, jwt := newAuthedEngine(t)
	u := &entity.User{Email: "alice@example.com", Username: "alice"}
	require.NoError(t, store.Users().Create(context.Background(), u))

	token, _, err := jwt.GenerateToken(u.Email)
	require.NoError(t, err)

	w := whoami(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), u.ID)
}

func TestAuthRejections(t *testing.T) {
	r, store, jwt := newAuthedEngine(t)

	// no header
	require.Equal(t, http.StatusForbidden, whoami(r, "").Code)
	// malformed header
	require.Equal(t, http.StatusForbidden, whoami(r, "Token abc").Code)
	// garbage token
	require.Equal(t, http.StatusForbidden, whoami(r, "Bearer not-a-jwt").Code)

	// valid token for a user that no longer exists
	u := &entity.User{Email: "gone@example.com", Username: "gone"}
	require.NoError(t, store.Users().Create(context.Background(), u))
	token, _, err := jwt.GenerateToken(u.Email)
	require.NoError(t, err)
	require.NoError(t, store.Users().Delete(context.Background(), u.ID))
	require.Equal(t, http.StatusForbidden, whoami(r, "Bearer "+token).Code)

	// token signed with a different secret
	other := helpers.NewJWTManager("other-secret", time.Hour)
	token, _, err = other.GenerateToken("alice@example.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, whoami(r, "Bearer "+token).Code)
}
