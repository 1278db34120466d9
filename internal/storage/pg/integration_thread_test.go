package pg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
)

func TestCreateAndGetThread(t *testing.T) {
	author := mustUser(t, "threadauthor@example.com", "threadauthor")

	id := mustThread(t, author, "First thread", "## markdown body")

	thread, err := storage.GetThread(id)
	require.NoError(t, err)
	assert.Equal(t, id, thread.Id)
	assert.Equal(t, domain.ThreadTitle("First thread"), thread.Title)
	assert.Equal(t, "## markdown body", thread.Content)
	assert.Equal(t, author.Id, thread.AuthorId)
	assert.Equal(t, domain.Username("threadauthor"), thread.AuthorName)
	assert.False(t, thread.CreatedAt.IsZero())
}

func TestGetThreadNotFound(t *testing.T) {
	_, err := storage.GetThread(99999)
	require.Error(t, err)

	var e *errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.StatusCode)
}

func TestListThreads(t *testing.T) {
	author := mustUser(t, "lister@example.com", "lister")

	// perPage is 3 in the test config
	var ids []domain.ThreadId
	for i := 0; i < 5; i++ {
		ids = append(ids, mustThread(t, author, fmt.Sprintf("listable zebra %d", i), "content"))
	}

	page, err := storage.ListThreads(1, 3, "listable zebra")
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Threads, 3)

	// Newest first
	assert.Equal(t, ids[4], page.Threads[0].Id)

	page2, err := storage.ListThreads(2, 3, "listable zebra")
	require.NoError(t, err)
	require.Len(t, page2.Threads, 2)
	assert.Equal(t, ids[0], page2.Threads[1].Id)
}

func TestListThreadsSearch(t *testing.T) {
	author := mustUser(t, "searcher@example.com", "searcher")
	mustThread(t, author, "About gophers", "they burrow")
	mustThread(t, author, "Unrelated", "nothing here mentions GoPhEr stuff in the title")

	page, err := storage.ListThreads(1, 10, "gopher")
	require.NoError(t, err)
	// Case-insensitive, matches title or content
	assert.GreaterOrEqual(t, len(page.Threads), 2)

	page, err = storage.ListThreads(1, 10, "no such phrase anywhere")
	require.NoError(t, err)
	assert.Empty(t, page.Threads)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestListThreadsCounts(t *testing.T) {
	author := mustUser(t, "counter@example.com", "counter")
	id := mustThread(t, author, "countable quokka", "content")

	_, err := storage.CreateComment(domain.CommentCreationData{ThreadId: id, Content: "one", Author: author})
	require.NoError(t, err)
	_, err = storage.CreateComment(domain.CommentCreationData{ThreadId: id, Content: "two", Author: author})
	require.NoError(t, err)
	_, err = storage.ToggleLike(id, author.Id)
	require.NoError(t, err)

	page, err := storage.ListThreads(1, 10, "countable quokka")
	require.NoError(t, err)
	require.Len(t, page.Threads, 1)
	assert.Equal(t, int64(2), page.Threads[0].CommentCount)
	assert.Equal(t, int64(1), page.Threads[0].LikeCount)
}

func TestUpdateThread(t *testing.T) {
	author := mustUser(t, "editor@example.com", "editor")
	id := mustThread(t, author, "Before", "old content")

	before, err := storage.GetThread(id)
	require.NoError(t, err)

	err = storage.UpdateThread(domain.ThreadUpdateData{Id: id, Title: "After", Content: "new content"})
	require.NoError(t, err)

	after, err := storage.GetThread(id)
	require.NoError(t, err)
	assert.Equal(t, domain.ThreadTitle("After"), after.Title)
	assert.Equal(t, "new content", after.Content)
	assert.Equal(t, before.CreatedAt, after.CreatedAt, "created_at is immutable")

	err = storage.UpdateThread(domain.ThreadUpdateData{Id: 99999, Title: "x", Content: "y"})
	var e *errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.StatusCode)
}

func TestDeleteThreadCascades(t *testing.T) {
	author := mustUser(t, "deleter@example.com", "deleter")
	id := mustThread(t, author, "Doomed", "content")

	comment, err := storage.CreateComment(domain.CommentCreationData{ThreadId: id, Content: "gone soon", Author: author})
	require.NoError(t, err)
	_, err = storage.ToggleLike(id, author.Id)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteThread(id))

	var e *errors.ErrorWithStatusCode
	_, err = storage.GetThread(id)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.StatusCode)

	_, err = storage.GetComment(comment.Id)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.StatusCode)

	count, err := storage.LikeCount(id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = storage.DeleteThread(id)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.StatusCode)
}

func TestAllThreads(t *testing.T) {
	author := mustUser(t, "admineye@example.com", "admineye")
	id := mustThread(t, author, "visible to admin", "content")

	threads, err := storage.AllThreads()
	require.NoError(t, err)

	var found bool
	for _, thread := range threads {
		if thread.Id == id {
			found = true
			assert.Equal(t, domain.Username("admineye"), thread.AuthorName)
		}
	}
	assert.True(t, found)
}
