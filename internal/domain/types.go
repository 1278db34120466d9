package domain

import "github.com/google/uuid"

type (
	Email    = string
	Password = string
	Username = string
	UserId   = uuid.UUID

	ThreadTitle = string
	ThreadId    = int64
	CommentId   = int64
)
