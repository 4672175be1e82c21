package database

import (
	"context"
	"fmt"
)

// ListComments fetches the flat comment list for a post in insertion order.
func (s *Session) ListComments(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := s.Query(ctx, `
		SELECT id, post_id, upvotes, text, username
		FROM comments WHERE post_id = ?
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Upvotes, &c.Text, &c.Username); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}

// CreateComment inserts a new comment on a post and returns it with its
// assigned id. A missing post surfaces as a foreign key error from the
// store.
func (s *Session) CreateComment(ctx context.Context, postID int64, text, username string) (*Comment, error) {
	result, err := s.Exec(ctx, `
		INSERT INTO comments (post_id, text, username)
		VALUES (?, ?, ?)
	`, postID, text, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment id: %w", err)
	}

	return &Comment{
		ID:       id,
		PostID:   postID,
		Upvotes:  0,
		Text:     text,
		Username: username,
	}, nil
}

// UpdateCommentText replaces a comment's text, matching on both post and
// comment id so a comment cannot be edited through the wrong post. Returns
// ErrNotFound when nothing matched.
func (s *Session) UpdateCommentText(ctx context.Context, postID, commentID int64, text string) (*Comment, error) {
	result, err := s.Exec(ctx, `
		UPDATE comments SET text = ?
		WHERE post_id = ? AND id = ?
	`, text, postID, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	c := &Comment{}
	err = s.QueryRow(ctx, `
		SELECT id, post_id, upvotes, text, username
		FROM comments WHERE post_id = ? AND id = ?
	`, postID, commentID).Scan(&c.ID, &c.PostID, &c.Upvotes, &c.Text, &c.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated comment: %w", err)
	}
	return c, nil
}
