package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/config"
	"github.com/corkboard-dev/corkboard/internal/logger"
	"github.com/corkboard-dev/corkboard/internal/service"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth    service.AuthService
	thread  service.ThreadService
	comment service.CommentService
	like    service.LikeService
	health  Pinger
	cfg     *config.Config
}

func New(auth service.AuthService, thread service.ThreadService, comment service.CommentService, like service.LikeService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, thread, comment, like, health, cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}
