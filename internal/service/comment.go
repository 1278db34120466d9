package service

import (
	"strings"

	"github.com/corkboard-dev/corkboard/internal/domain"
	"github.com/corkboard-dev/corkboard/internal/errors"
)

type CommentService interface {
	Create(creationData domain.CommentCreationData) (domain.Comment, error)
	Delete(id domain.CommentId, caller *domain.User) error
}

type Comment struct {
	storage CommentStorage
}

type CommentStorage interface {
	CreateComment(creationData domain.CommentCreationData) (domain.Comment, error)
	GetComment(id domain.CommentId) (domain.Comment, error)
	DeleteComment(id domain.CommentId) error
}

func NewComment(storage CommentStorage) *Comment {
	return &Comment{storage}
}

// Create rejects whitespace-only content before any storage call.
func (c *Comment) Create(creationData domain.CommentCreationData) (domain.Comment, error) {
	if strings.TrimSpace(creationData.Content) == "" {
		return domain.Comment{}, errors.NewValidation("Comment can't be empty")
	}
	return c.storage.CreateComment(creationData)
}

// Delete is restricted to the comment's author. Admins are deliberately not
// granted comment deletion; widening this is an open product decision.
func (c *Comment) Delete(id domain.CommentId, caller *domain.User) error {
	comment, err := c.storage.GetComment(id)
	if err != nil {
		return err
	}
	if !domain.CanModify(comment.AuthorId, caller) {
		return errors.NewPermissionDenied("Only the author can delete this comment")
	}
	return c.storage.DeleteComment(id)
}
