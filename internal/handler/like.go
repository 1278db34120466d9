package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/middleware"
	"github.com/corkboard-dev/corkboard/internal/utils"
)

// ToggleLike flips the caller's like and returns the authoritative state.
// Clients reconcile their optimistic UI against this response.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	threadId, err := parseIntParam(mux.Vars(r)["thread"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, err := h.like.Toggle(domain.ThreadId(threadId), user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.ToggleLikeResponse{LikeStatus: status})
}
