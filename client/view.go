package client

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/corkboard-dev/corkboard/internal/domain"
)

// ErrActionPending means a call for this control is still in flight. The
// caller keeps the control disabled until the outcome lands.
var ErrActionPending = errors.New("action already pending")

// State of the last interaction on a control.
type State int

const (
	StateIdle State = iota
	StatePending
	StateCommitted
	StateRolledBack
)

// LikeAPI is the slice of the client the like control needs.
type LikeAPI interface {
	ToggleLike(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error)
}

// LikeControl keeps the displayed like state of one thread. Toggle flips it
// optimistically, then reconciles with the authoritative server response or
// rolls back to the exact prior value on failure.
type LikeControl struct {
	mu       sync.Mutex
	api      LikeAPI
	threadId domain.ThreadId
	timeout  time.Duration

	liked bool
	count int64
	state State
}

// NewLikeControl seeds the control with the values from the thread view.
func NewLikeControl(api LikeAPI, threadId domain.ThreadId, liked bool, count int64) *LikeControl {
	return &LikeControl{
		api:      api,
		threadId: threadId,
		timeout:  defaultTimeout,
		liked:    liked,
		count:    count,
		state:    StateIdle,
	}
}

// Status returns the currently displayed value and control state.
func (lc *LikeControl) Status() (liked bool, count int64, state State) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.liked, lc.count, lc.state
}

// Toggle flips the like. Only one call may be outstanding; further calls
// return ErrActionPending until the first resolves. On success the displayed
// value is the server's; on failure it is the exact value before the flip.
func (lc *LikeControl) Toggle(ctx context.Context) error {
	lc.mu.Lock()
	if lc.state == StatePending {
		lc.mu.Unlock()
		return ErrActionPending
	}

	prevLiked, prevCount := lc.liked, lc.count

	// Optimistic flip shown immediately
	lc.liked = !lc.liked
	if lc.liked {
		lc.count++
	} else {
		lc.count--
	}
	lc.state = StatePending
	lc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, lc.timeout)
	defer cancel()

	status, err := lc.api.ToggleLike(ctx, lc.threadId)

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if err != nil {
		lc.liked, lc.count = prevLiked, prevCount
		lc.state = StateRolledBack
		return err
	}

	lc.liked, lc.count = status.Liked, status.Count
	lc.state = StateCommitted
	return nil
}

// CommentAPI is the slice of the client the comment feed needs.
type CommentAPI interface {
	CreateComment(ctx context.Context, threadId domain.ThreadId, content string) (domain.Comment, error)
	DeleteComment(ctx context.Context, id domain.CommentId) error
}

// CommentFeed keeps the displayed comment list of one thread. Additions
// append in server-confirmed completion order; deletions are optimistic
// with rollback.
type CommentFeed struct {
	mu       sync.Mutex
	api      CommentAPI
	threadId domain.ThreadId
	timeout  time.Duration

	comments []domain.Comment
	state    State
}

// NewCommentFeed seeds the feed with the comments from the thread view.
func NewCommentFeed(api CommentAPI, threadId domain.ThreadId, comments []domain.Comment) *CommentFeed {
	feed := &CommentFeed{
		api:      api,
		threadId: threadId,
		timeout:  defaultTimeout,
		state:    StateIdle,
	}
	feed.comments = append(feed.comments, comments...)
	return feed
}

// Comments returns a copy of the displayed list.
func (cf *CommentFeed) Comments() []domain.Comment {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	out := make([]domain.Comment, len(cf.comments))
	copy(out, cf.comments)
	return out
}

// State returns the outcome of the last interaction.
func (cf *CommentFeed) State() State {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	return cf.state
}

// Add posts a comment and appends it once the server confirms. Only one
// call may be outstanding.
func (cf *CommentFeed) Add(ctx context.Context, content string) (domain.Comment, error) {
	cf.mu.Lock()
	if cf.state == StatePending {
		cf.mu.Unlock()
		return domain.Comment{}, ErrActionPending
	}
	cf.state = StatePending
	cf.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, cf.timeout)
	defer cancel()

	comment, err := cf.api.CreateComment(ctx, cf.threadId, content)

	cf.mu.Lock()
	defer cf.mu.Unlock()
	if err != nil {
		cf.state = StateRolledBack
		return domain.Comment{}, err
	}

	cf.comments = append(cf.comments, comment)
	cf.state = StateCommitted
	return comment, nil
}

// Remove deletes a comment optimistically: it disappears from the displayed
// list immediately and reappears in its prior position if the server fails.
func (cf *CommentFeed) Remove(ctx context.Context, id domain.CommentId) error {
	cf.mu.Lock()
	if cf.state == StatePending {
		cf.mu.Unlock()
		return ErrActionPending
	}

	idx := -1
	for i, c := range cf.comments {
		if c.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		cf.mu.Unlock()
		return errors.New("comment not in feed")
	}

	removed := cf.comments[idx]
	cf.comments = append(cf.comments[:idx:idx], cf.comments[idx+1:]...)
	cf.state = StatePending
	cf.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, cf.timeout)
	defer cancel()

	err := cf.api.DeleteComment(ctx, id)

	cf.mu.Lock()
	defer cf.mu.Unlock()
	if err != nil {
		restored := make([]domain.Comment, 0, len(cf.comments)+1)
		restored = append(restored, cf.comments[:idx]...)
		restored = append(restored, removed)
		restored = append(restored, cf.comments[idx:]...)
		cf.comments = restored
		cf.state = StateRolledBack
		return err
	}

	cf.state = StateCommitted
	return nil
}

// SortByServerOrder re-sorts the displayed list by server-assigned
// (created_at, id), the strict thread order.
func (cf *CommentFeed) SortByServerOrder() {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	sort.SliceStable(cf.comments, func(i, j int) bool {
		if !cf.comments[i].CreatedAt.Equal(cf.comments[j].CreatedAt) {
			return cf.comments[i].CreatedAt.Before(cf.comments[j].CreatedAt)
		}
		return cf.comments[i].Id < cf.comments[j].Id
	})
}
