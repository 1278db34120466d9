package domain

import "time"

// Thread is a top-level post. Content is raw markdown; rendering to HTML
// happens at read time and never touches the stored value.
type Thread struct {
	Id         ThreadId    `json:"id"`
	Title      ThreadTitle `json:"title"`
	Content    string      `json:"content"`
	AuthorId   UserId      `json:"author_id"`
	AuthorName Username    `json:"author"`
	CreatedAt  time.Time   `json:"created_at"`
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title   ThreadTitle
	Content string
	Author  User
}

type ThreadUpdateData struct {
	Id      ThreadId
	Title   ThreadTitle
	Content string
}

// ThreadSummary is a listing row: the thread plus derived counters.
type ThreadSummary struct {
	Thread
	CommentCount int64 `json:"comment_count"`
	LikeCount    int64 `json:"like_count"`
}

// ThreadView is the full read-side aggregate for a single thread page.
type ThreadView struct {
	Thread
	ContentHTML string    `json:"content_html"`
	Comments    []Comment `json:"comments"`
	LikeCount   int64     `json:"like_count"`
	Liked       bool      `json:"liked"`
}

// ThreadPage is one page of the listing.
type ThreadPage struct {
	Threads    []ThreadSummary `json:"threads"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int64           `json:"total"`
}
