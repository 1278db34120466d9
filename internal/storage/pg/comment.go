package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
)

// CreateComment persists a comment and returns it with the author username
// resolved, so callers can hand it straight back to the client.
func (s *Storage) CreateComment(creationData domain.CommentCreationData) (domain.Comment, error) {
	var comment domain.Comment
	err := s.db.QueryRow(`
        INSERT INTO comments (thread_id, author_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, thread_id, author_id, content, created_at
    `, creationData.ThreadId, creationData.Author.Id, creationData.Content).Scan(
		&comment.Id, &comment.ThreadId, &comment.AuthorId, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		if isPqCode(err, pqForeignKeyViolation) {
			return domain.Comment{}, internal_errors.NewNotFound("Thread not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}

	err = s.db.QueryRow(
		"SELECT username FROM profiles WHERE id = $1",
		comment.AuthorId,
	).Scan(&comment.AuthorName)
	if err != nil {
		// The comment exists; a missing profile only degrades the display name.
		comment.AuthorName = "anonymous"
	}
	return comment, nil
}

func (s *Storage) GetComment(id domain.CommentId) (domain.Comment, error) {
	var comment domain.Comment
	err := s.db.QueryRow(`
        SELECT c.id, c.thread_id, c.author_id, c.content, c.created_at,
               COALESCE(p.username, 'anonymous')
        FROM comments c
        LEFT JOIN profiles p ON p.id = c.author_id
        WHERE c.id = $1
    `, id).Scan(&comment.Id, &comment.ThreadId, &comment.AuthorId, &comment.Content, &comment.CreatedAt, &comment.AuthorName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NewNotFound("Comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return comment, nil
}

// CommentsByThread returns the thread's comments in creation order.
func (s *Storage) CommentsByThread(threadId domain.ThreadId) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
        SELECT c.id, c.thread_id, c.author_id, c.content, c.created_at,
               COALESCE(p.username, 'anonymous')
        FROM comments c
        LEFT JOIN profiles p ON p.id = c.author_id
        WHERE c.thread_id = $1
        ORDER BY c.created_at, c.id
    `, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.ThreadId, &c.AuthorId, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return comments, nil
}

func (s *Storage) DeleteComment(id domain.CommentId) error {
	result, err := s.db.Exec("DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NewNotFound("Comment not found")
	}
	return nil
}
