package domain

import "time"

// Comment belongs to exactly one thread. Comments are append-only: never
// edited or reordered, only added or removed.
type Comment struct {
	Id         CommentId `json:"id"`
	ThreadId   ThreadId  `json:"thread_id"`
	AuthorId   UserId    `json:"author_id"`
	AuthorName Username  `json:"author"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentCreationData struct {
	ThreadId ThreadId
	Content  string
	Author   User
}
