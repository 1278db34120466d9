package api

import "github.com/corkboard-dev/corkboard/internal/domain"

// CreateCommentResponse carries the persisted comment with its author
// resolved, so clients can append it without a follow-up fetch.
type CreateCommentResponse struct {
	Comment domain.Comment `json:"data"`
}

// ErrorResponse is the structured error payload of the comment endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
