package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/middleware"
	"github.com/corkboard-dev/corkboard/internal/utils"
)

// writeCommentError emits the structured error payload. The comment endpoint
// is consumed by form submissions whose client reads JSON either way.
func writeCommentError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.StatusCode(err), api.ErrorResponse{Error: err.Error()})
}

// CreateComment accepts a form-encoded body (content, thread_id) and responds
// with the persisted comment as JSON.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		writeCommentError(w, errors.NewUnauthenticated("Please sign-in"))
		return
	}

	if err := r.ParseForm(); err != nil {
		writeCommentError(w, errors.NewValidation("Malformed form body"))
		return
	}

	threadId, err := parseIntParam(r.PostFormValue("thread_id"), "thread ID")
	if err != nil {
		writeCommentError(w, errors.NewValidation(err.Error()))
		return
	}

	creation := domain.CommentCreationData{
		ThreadId: domain.ThreadId(threadId),
		Content:  r.PostFormValue("content"),
		Author:   *user,
	}
	comment, err := h.comment.Create(creation)
	if err != nil {
		writeCommentError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateCommentResponse{Comment: comment})
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	commentId, err := parseIntParam(mux.Vars(r)["comment"], "comment ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.comment.Delete(domain.CommentId(commentId), user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
