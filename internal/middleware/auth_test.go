package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/jwt"
)

func testUser(admin bool) domain.User {
	return domain.User{
		Id:       uuid.New(),
		Email:    "user@example.com",
		Username: "user",
		Admin:    admin,
	}
}

func echoUserHandler(t *testing.T, captured **domain.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestNeedAuth(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	auth := NewAuth(jwtService)
	user := testUser(false)

	token, err := jwtService.NewToken(user)
	require.NoError(t, err)

	t.Run("valid cookie", func(t *testing.T) {
		var captured *domain.User
		handler := auth.NeedAuth()(echoUserHandler(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.Id, captured.Id)
		assert.Equal(t, user.Username, captured.Username)
	})

	t.Run("valid bearer header", func(t *testing.T) {
		var captured *domain.User
		handler := auth.NeedAuth()(echoUserHandler(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.Id, captured.Id)
	})

	t.Run("no token", func(t *testing.T) {
		handler := auth.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		handler := auth.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredService := jwt.New("test-secret", -time.Minute)
		expired, err := expiredService.NewToken(user)
		require.NoError(t, err)

		handler := auth.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: expired})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	auth := NewAuth(jwtService)

	t.Run("admin passes", func(t *testing.T) {
		token, err := jwtService.NewToken(testUser(true))
		require.NoError(t, err)

		var captured *domain.User
		handler := auth.AdminOnly()(echoUserHandler(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.True(t, captured.Admin)
	})

	t.Run("regular user rejected", func(t *testing.T) {
		token, err := jwtService.NewToken(testUser(false))
		require.NoError(t, err)

		handler := auth.AdminOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		handler := auth.AdminOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	auth := NewAuth(jwtService)

	t.Run("with token", func(t *testing.T) {
		user := testUser(false)
		token, err := jwtService.NewToken(user)
		require.NoError(t, err)

		var captured *domain.User
		handler := auth.OptionalAuth()(echoUserHandler(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.Id, captured.Id)
	})

	t.Run("without token", func(t *testing.T) {
		var captured *domain.User
		handler := auth.OptionalAuth()(echoUserHandler(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, captured)
	})

	t.Run("with bad token", func(t *testing.T) {
		var captured *domain.User
		handler := auth.OptionalAuth()(echoUserHandler(t, &captured))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, captured)
	})
}
