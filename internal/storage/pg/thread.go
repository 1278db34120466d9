package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/corkboard-dev/corkboard/internal/domain"
	internal_errors "github.com/corkboard-dev/corkboard/internal/errors"
)

func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := s.db.QueryRow(`
        INSERT INTO threads (title, content, author_id)
        VALUES ($1, $2, $3)
        RETURNING id
    `, creationData.Title, creationData.Content, creationData.Author.Id).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert thread: %w", err)
	}
	return id, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRow(`
        SELECT t.id, t.title, t.content, t.author_id, t.created_at,
               COALESCE(p.username, 'anonymous')
        FROM threads t
        LEFT JOIN profiles p ON p.id = t.author_id
        WHERE t.id = $1
    `, id).Scan(&thread.Id, &thread.Title, &thread.Content, &thread.AuthorId, &thread.CreatedAt, &thread.AuthorName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NewNotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

// ListThreads returns one page of threads, newest first, each with derived
// comment and like counts. search filters title/content case-insensitively;
// empty search matches everything.
func (s *Storage) ListThreads(page, perPage int, search string) (domain.ThreadPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	pattern := "%" + search + "%"

	var total int64
	err := s.db.QueryRow(`
        SELECT COUNT(*) FROM threads
        WHERE $1 = '' OR title ILIKE $2 OR content ILIKE $2
    `, search, pattern).Scan(&total)
	if err != nil {
		return domain.ThreadPage{}, fmt.Errorf("failed to count threads: %w", err)
	}

	rows, err := s.db.Query(`
        SELECT t.id, t.title, t.content, t.author_id, t.created_at,
               COALESCE(p.username, 'anonymous'),
               (SELECT COUNT(*) FROM comments c WHERE c.thread_id = t.id),
               (SELECT COUNT(*) FROM likes l WHERE l.thread_id = t.id)
        FROM threads t
        LEFT JOIN profiles p ON p.id = t.author_id
        WHERE $1 = '' OR t.title ILIKE $2 OR t.content ILIKE $2
        ORDER BY t.created_at DESC, t.id DESC
        LIMIT $3 OFFSET $4
    `, search, pattern, perPage, offset)
	if err != nil {
		return domain.ThreadPage{}, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.ThreadSummary
	for rows.Next() {
		var t domain.ThreadSummary
		if err := rows.Scan(
			&t.Id, &t.Title, &t.Content, &t.AuthorId, &t.CreatedAt,
			&t.AuthorName, &t.CommentCount, &t.LikeCount,
		); err != nil {
			return domain.ThreadPage{}, fmt.Errorf("failed to scan thread row: %w", err)
		}
		threads = append(threads, t)
	}
	if err = rows.Err(); err != nil {
		return domain.ThreadPage{}, fmt.Errorf("rows iteration error: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return domain.ThreadPage{Threads: threads, Page: page, TotalPages: totalPages, Total: total}, nil
}

// AllThreads is the admin view: every thread with author and comment count.
func (s *Storage) AllThreads() ([]domain.ThreadSummary, error) {
	rows, err := s.db.Query(`
        SELECT t.id, t.title, t.content, t.author_id, t.created_at,
               COALESCE(p.username, 'anonymous'),
               (SELECT COUNT(*) FROM comments c WHERE c.thread_id = t.id),
               (SELECT COUNT(*) FROM likes l WHERE l.thread_id = t.id)
        FROM threads t
        LEFT JOIN profiles p ON p.id = t.author_id
        ORDER BY t.created_at DESC, t.id DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.ThreadSummary
	for rows.Next() {
		var t domain.ThreadSummary
		if err := rows.Scan(
			&t.Id, &t.Title, &t.Content, &t.AuthorId, &t.CreatedAt,
			&t.AuthorName, &t.CommentCount, &t.LikeCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread row: %w", err)
		}
		threads = append(threads, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

// UpdateThread replaces title and content in place. created_at is immutable.
func (s *Storage) UpdateThread(update domain.ThreadUpdateData) error {
	result, err := s.db.Exec(
		"UPDATE threads SET title = $1, content = $2 WHERE id = $3",
		update.Title, update.Content, update.Id,
	)
	if err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NewNotFound("Thread not found")
	}
	return nil
}

// DeleteThread removes the row; comments and likes cascade via foreign keys.
func (s *Storage) DeleteThread(id domain.ThreadId) error {
	result, err := s.db.Exec("DELETE FROM threads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NewNotFound("Thread not found")
	}
	return nil
}
