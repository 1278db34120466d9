package handler

import (
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/utils"
)

// AdminThreads lists every thread with its comment and like counters.
// Reachable only behind the admin middleware.
func (h *Handler) AdminThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.thread.All()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.AdminThreadsResponse{Threads: threads})
}
