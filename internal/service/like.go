package service

import (
	"github.com/corkboard-dev/corkboard/internal/domain"
)

type LikeService interface {
	Toggle(threadId domain.ThreadId, user *domain.User) (domain.LikeStatus, error)
}

type Like struct {
	storage LikeStorage
}

type LikeStorage interface {
	ToggleLike(threadId domain.ThreadId, userId domain.UserId) (domain.LikeStatus, error)
}

func NewLike(storage LikeStorage) *Like {
	return &Like{storage}
}

// Toggle flips the caller's like and returns the authoritative state for
// client-side reconciliation.
func (l *Like) Toggle(threadId domain.ThreadId, user *domain.User) (domain.LikeStatus, error) {
	return l.storage.ToggleLike(threadId, user.Id)
}
