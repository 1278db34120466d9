package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
)

// ToggleLike flips the (user, thread) pair inside one transaction and
// returns the resulting authoritative state. The likes table is a set:
// toggling twice restores the original state and count.
func (s *Storage) ToggleLike(threadId domain.ThreadId, userId domain.UserId) (domain.LikeStatus, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.LikeStatus{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"DELETE FROM likes WHERE thread_id = $1 AND user_id = $2",
		threadId, userId,
	)
	if err != nil {
		return domain.LikeStatus{}, fmt.Errorf("failed to delete like: %w", err)
	}

	removed, _ := result.RowsAffected()
	liked := false
	if removed == 0 {
		_, err = tx.Exec(
			"INSERT INTO likes (thread_id, user_id) VALUES ($1, $2)",
			threadId, userId,
		)
		if err != nil {
			if isPqCode(err, pqForeignKeyViolation) {
				return domain.LikeStatus{}, internal_errors.NewNotFound("Thread not found")
			}
			return domain.LikeStatus{}, fmt.Errorf("failed to insert like: %w", err)
		}
		liked = true
	}

	var count int64
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM likes WHERE thread_id = $1",
		threadId,
	).Scan(&count)
	if err != nil {
		return domain.LikeStatus{}, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.LikeStatus{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return domain.LikeStatus{Liked: liked, Count: count}, nil
}

func (s *Storage) LikeCount(threadId domain.ThreadId) (int64, error) {
	var count int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM likes WHERE thread_id = $1",
		threadId,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (s *Storage) HasLiked(threadId domain.ThreadId, userId domain.UserId) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM likes WHERE thread_id = $1 AND user_id = $2",
		threadId, userId,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return true, nil
}
