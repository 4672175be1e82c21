package database

import (
	"context"
	"database/sql"
	"fmt"
)

const postCommentJoin = `
	SELECT p.id, p.upvotes, p.title, p.link, p.username,
	       c.id, c.upvotes, c.text, c.username
	FROM posts p
	LEFT JOIN comments c ON p.id = c.post_id
`

// ListPostRows fetches the full posts-to-comments join.
func (s *Session) ListPostRows(ctx context.Context) ([]PostCommentRow, error) {
	rows, err := s.Query(ctx, postCommentJoin)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return scanPostCommentRows(rows)
}

// GetPostRows fetches the join rows for a single post. An empty result means
// the post does not exist.
func (s *Session) GetPostRows(ctx context.Context, postID int64) ([]PostCommentRow, error) {
	rows, err := s.Query(ctx, postCommentJoin+" WHERE p.id = ?", postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	defer rows.Close()

	return scanPostCommentRows(rows)
}

// CreatePost inserts a new post and returns it with its assigned id.
func (s *Session) CreatePost(ctx context.Context, title, link, username string) (*Post, error) {
	result, err := s.Exec(ctx, `
		INSERT INTO posts (title, link, username)
		VALUES (?, ?, ?)
	`, title, link, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get post id: %w", err)
	}

	return &Post{
		ID:       id,
		Upvotes:  0,
		Title:    title,
		Link:     link,
		Username: username,
		Comments: []Comment{},
	}, nil
}

// DeletePost removes a post and, via the cascading foreign key, its
// comments. Returns ErrNotFound when no row was affected.
func (s *Session) DeletePost(ctx context.Context, postID int64) error {
	result, err := s.Exec(ctx, "DELETE FROM posts WHERE id = ?", postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPostCommentRows(rows *sql.Rows) ([]PostCommentRow, error) {
	var out []PostCommentRow
	for rows.Next() {
		var row PostCommentRow
		if err := rows.Scan(
			&row.PostID, &row.PostUpvotes, &row.Title, &row.Link, &row.Username,
			&row.CommentID, &row.CommentUpvotes, &row.CommentText, &row.CommentUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post rows: %w", err)
	}
	return out, nil
}
