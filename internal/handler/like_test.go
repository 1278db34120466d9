package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
)

func likeRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/v1/threads/{thread}/like", h.ToggleLike).Methods(http.MethodPost)
	return router
}

func TestToggleLike(t *testing.T) {
	t.Run("returns authoritative state", func(t *testing.T) {
		user := regularUser()
		like := &MockLikeService{MockToggle: func(threadId domain.ThreadId, u *domain.User) (domain.LikeStatus, error) {
			require.Equal(t, domain.ThreadId(42), threadId)
			require.Equal(t, user.Id, u.Id)
			return domain.LikeStatus{Liked: true, Count: 4}, nil
		}}
		h := New(nil, nil, nil, like, nil, testConfig())

		req := withUser(httptest.NewRequest(http.MethodPost, "/v1/threads/42/like", nil), user)
		rr := httptest.NewRecorder()
		likeRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.ToggleLikeResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Liked)
		assert.Equal(t, int64(4), resp.Count)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		h := New(nil, nil, nil, &MockLikeService{}, nil, testConfig())

		rr := httptest.NewRecorder()
		likeRouter(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/threads/42/like", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("thread gone", func(t *testing.T) {
		like := &MockLikeService{MockToggle: func(threadId domain.ThreadId, u *domain.User) (domain.LikeStatus, error) {
			return domain.LikeStatus{}, errors.NewNotFound("Thread not found")
		}}
		h := New(nil, nil, nil, like, nil, testConfig())

		req := withUser(httptest.NewRequest(http.MethodPost, "/v1/threads/42/like", nil), regularUser())
		rr := httptest.NewRecorder()
		likeRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		h := New(nil, nil, nil, &MockLikeService{}, nil, testConfig())

		req := withUser(httptest.NewRequest(http.MethodPost, "/v1/threads/abc/like", nil), regularUser())
		rr := httptest.NewRecorder()
		likeRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
