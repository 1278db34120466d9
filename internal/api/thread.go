package api

import "github.com/corkboard-dev/corkboard/internal/domain"

// Request DTOs

type CreateThreadRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdateThreadRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type CreateThreadResponse struct {
	Id domain.ThreadId `json:"id"`
}

type ThreadResponse struct {
	domain.ThreadView
}

type ThreadListResponse struct {
	domain.ThreadPage
}

// AdminThreadsResponse lists every thread with author and comment count.
type AdminThreadsResponse struct {
	Threads []domain.ThreadSummary `json:"threads"`
}
