package service

import (
	"strings"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
	"github.com/corkboard-dev/corkboard/internal/markdown"
)

type ThreadService interface {
	Create(creationData domain.ThreadCreationData) (domain.ThreadId, error)
	Get(id domain.ThreadId, viewer *domain.User) (domain.ThreadView, error)
	List(page int, search string) (domain.ThreadPage, error)
	Update(update domain.ThreadUpdateData, caller *domain.User) error
	Delete(id domain.ThreadId, caller *domain.User) error
	All() ([]domain.ThreadSummary, error)
}

type Thread struct {
	storage  ThreadStorage
	renderer *markdown.Renderer
	perPage  int
}

type ThreadStorage interface {
	CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	ListThreads(page, perPage int, search string) (domain.ThreadPage, error)
	AllThreads() ([]domain.ThreadSummary, error)
	UpdateThread(update domain.ThreadUpdateData) error
	DeleteThread(id domain.ThreadId) error
	CommentsByThread(threadId domain.ThreadId) ([]domain.Comment, error)
	LikeCount(threadId domain.ThreadId) (int64, error)
	HasLiked(threadId domain.ThreadId, userId domain.UserId) (bool, error)
}

func NewThread(storage ThreadStorage, renderer *markdown.Renderer, perPage int) *Thread {
	if perPage <= 0 {
		perPage = 10
	}
	return &Thread{storage, renderer, perPage}
}

func validateThreadInput(title domain.ThreadTitle, content string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewValidation("Title can't be empty")
	}
	if strings.TrimSpace(content) == "" {
		return errors.NewValidation("Content can't be empty")
	}
	return nil
}

func (t *Thread) Create(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	if err := validateThreadInput(creationData.Title, creationData.Content); err != nil {
		return -1, err
	}
	return t.storage.CreateThread(creationData)
}

// Get assembles the full read-side view: thread, rendered HTML, comments in
// creation order, like count and whether viewer liked it. viewer may be nil.
func (t *Thread) Get(id domain.ThreadId, viewer *domain.User) (domain.ThreadView, error) {
	thread, err := t.storage.GetThread(id)
	if err != nil {
		return domain.ThreadView{}, err
	}

	comments, err := t.storage.CommentsByThread(id)
	if err != nil {
		return domain.ThreadView{}, err
	}

	likeCount, err := t.storage.LikeCount(id)
	if err != nil {
		return domain.ThreadView{}, err
	}

	liked := false
	if viewer != nil {
		liked, err = t.storage.HasLiked(id, viewer.Id)
		if err != nil {
			return domain.ThreadView{}, err
		}
	}

	return domain.ThreadView{
		Thread:      thread,
		ContentHTML: t.renderer.RenderSafe(thread.Content),
		Comments:    comments,
		LikeCount:   likeCount,
		Liked:       liked,
	}, nil
}

func (t *Thread) List(page int, search string) (domain.ThreadPage, error) {
	if page < 1 {
		page = 1
	}
	return t.storage.ListThreads(page, t.perPage, strings.TrimSpace(search))
}

func (t *Thread) All() ([]domain.ThreadSummary, error) {
	return t.storage.AllThreads()
}

// Update is author-only; admins may delete but not rewrite other people's
// posts.
func (t *Thread) Update(update domain.ThreadUpdateData, caller *domain.User) error {
	if err := validateThreadInput(update.Title, update.Content); err != nil {
		return err
	}

	thread, err := t.storage.GetThread(update.Id)
	if err != nil {
		return err
	}
	if !domain.CanModify(thread.AuthorId, caller) {
		return errors.NewPermissionDenied("Only the author can edit this thread")
	}

	return t.storage.UpdateThread(update)
}

// Delete allows the author or an admin. A missing id surfaces as NotFound,
// so repeated deletes fail softly instead of crashing the caller.
func (t *Thread) Delete(id domain.ThreadId, caller *domain.User) error {
	thread, err := t.storage.GetThread(id)
	if err != nil {
		return err
	}
	if !domain.CanModify(thread.AuthorId, caller) && !domain.IsAdmin(caller) {
		return errors.NewPermissionDenied("Only the author or an admin can delete this thread")
	}

	return t.storage.DeleteThread(id)
}
