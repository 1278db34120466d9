package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard-dev/corkboard/internal/domain"
)

type MockLikeAPI struct {
	MockToggle func(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error)
}

func (m *MockLikeAPI) ToggleLike(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
	if m.MockToggle != nil {
		return m.MockToggle(ctx, threadId)
	}
	return domain.LikeStatus{}, nil
}

type MockCommentAPI struct {
	MockCreate func(ctx context.Context, threadId domain.ThreadId, content string) (domain.Comment, error)
	MockDelete func(ctx context.Context, id domain.CommentId) error
}

func (m *MockCommentAPI) CreateComment(ctx context.Context, threadId domain.ThreadId, content string) (domain.Comment, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, threadId, content)
	}
	return domain.Comment{}, nil
}

func (m *MockCommentAPI) DeleteComment(ctx context.Context, id domain.CommentId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

func TestLikeControlCommit(t *testing.T) {
	api := &MockLikeAPI{MockToggle: func(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
		// Server says 5, not the optimistic 4: another user liked meanwhile
		return domain.LikeStatus{Liked: true, Count: 5}, nil
	}}
	lc := NewLikeControl(api, 42, false, 3)

	require.NoError(t, lc.Toggle(context.Background()))

	liked, count, state := lc.Status()
	assert.True(t, liked)
	assert.Equal(t, int64(5), count, "displayed count must be the server's, not the optimistic guess")
	assert.Equal(t, StateCommitted, state)
}

func TestLikeControlRollback(t *testing.T) {
	api := &MockLikeAPI{MockToggle: func(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
		return domain.LikeStatus{}, errors.New("backend unavailable")
	}}
	lc := NewLikeControl(api, 42, true, 7)

	err := lc.Toggle(context.Background())
	assert.Error(t, err)

	liked, count, state := lc.Status()
	assert.True(t, liked, "rollback must restore the exact prior value")
	assert.Equal(t, int64(7), count)
	assert.Equal(t, StateRolledBack, state)
}

func TestLikeControlPendingGuard(t *testing.T) {
	release := make(chan struct{})
	api := &MockLikeAPI{MockToggle: func(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
		<-release
		return domain.LikeStatus{Liked: true, Count: 1}, nil
	}}
	lc := NewLikeControl(api, 42, false, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		lc.Toggle(context.Background())
	}()

	// Wait until the first toggle is visibly pending
	require.Eventually(t, func() bool {
		_, _, state := lc.Status()
		return state == StatePending
	}, time.Second, time.Millisecond)

	assert.ErrorIs(t, lc.Toggle(context.Background()), ErrActionPending)

	close(release)
	wg.Wait()

	_, _, state := lc.Status()
	assert.Equal(t, StateCommitted, state)

	// Control is usable again after the outcome landed
	assert.NoError(t, lc.Toggle(context.Background()))
}

func TestLikeControlTimeout(t *testing.T) {
	api := &MockLikeAPI{MockToggle: func(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
		<-ctx.Done()
		return domain.LikeStatus{}, ctx.Err()
	}}
	lc := NewLikeControl(api, 42, false, 2)
	lc.timeout = 20 * time.Millisecond

	err := lc.Toggle(context.Background())
	assert.Error(t, err)

	liked, count, state := lc.Status()
	assert.False(t, liked)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, StateRolledBack, state, "a timed-out call must not leave the control stuck pending")

	// And a retry can go through
	api.MockToggle = func(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
		return domain.LikeStatus{Liked: true, Count: 3}, nil
	}
	assert.NoError(t, lc.Toggle(context.Background()))
}

func TestCommentFeedAdd(t *testing.T) {
	now := time.Now()
	api := &MockCommentAPI{MockCreate: func(ctx context.Context, threadId domain.ThreadId, content string) (domain.Comment, error) {
		return domain.Comment{Id: 9, ThreadId: threadId, Content: content, CreatedAt: now}, nil
	}}
	feed := NewCommentFeed(api, 42, nil)

	comment, err := feed.Add(context.Background(), "Nice thread")
	require.NoError(t, err)
	assert.Equal(t, domain.CommentId(9), comment.Id)

	comments := feed.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "Nice thread", comments[0].Content)
	assert.Equal(t, StateCommitted, feed.State())
}

func TestCommentFeedAddFailure(t *testing.T) {
	api := &MockCommentAPI{MockCreate: func(ctx context.Context, threadId domain.ThreadId, content string) (domain.Comment, error) {
		return domain.Comment{}, errors.New("backend unavailable")
	}}
	feed := NewCommentFeed(api, 42, nil)

	_, err := feed.Add(context.Background(), "Nice thread")
	assert.Error(t, err)
	assert.Empty(t, feed.Comments(), "failed additions must not appear")
	assert.Equal(t, StateRolledBack, feed.State())
}

func TestCommentFeedRemoveRollback(t *testing.T) {
	seed := []domain.Comment{{Id: 1, Content: "a"}, {Id: 2, Content: "b"}, {Id: 3, Content: "c"}}
	api := &MockCommentAPI{MockDelete: func(ctx context.Context, id domain.CommentId) error {
		return errors.New("backend unavailable")
	}}
	feed := NewCommentFeed(api, 42, seed)

	err := feed.Remove(context.Background(), 2)
	assert.Error(t, err)

	comments := feed.Comments()
	require.Len(t, comments, 3)
	assert.Equal(t, domain.CommentId(2), comments[1].Id, "rollback must restore the prior position")
}

func TestCommentFeedRemove(t *testing.T) {
	seed := []domain.Comment{{Id: 1}, {Id: 2}, {Id: 3}}
	feed := NewCommentFeed(&MockCommentAPI{}, 42, seed)

	require.NoError(t, feed.Remove(context.Background(), 2))

	comments := feed.Comments()
	require.Len(t, comments, 2)
	assert.Equal(t, domain.CommentId(1), comments[0].Id)
	assert.Equal(t, domain.CommentId(3), comments[1].Id)
}

func TestCommentFeedSortByServerOrder(t *testing.T) {
	base := time.Now()
	seed := []domain.Comment{
		{Id: 3, CreatedAt: base.Add(2 * time.Second)},
		{Id: 1, CreatedAt: base},
		{Id: 5, CreatedAt: base.Add(time.Second)},
		{Id: 4, CreatedAt: base.Add(time.Second)},
	}
	feed := NewCommentFeed(&MockCommentAPI{}, 42, seed)

	feed.SortByServerOrder()

	comments := feed.Comments()
	ids := []domain.CommentId{comments[0].Id, comments[1].Id, comments[2].Id, comments[3].Id}
	assert.Equal(t, []domain.CommentId{1, 4, 5, 3}, ids)
}
