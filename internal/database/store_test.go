package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostStore_JoinRowsAndDelete(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	var first, second *Post
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		if first, err = s.CreatePost(ctx, "T1", "https://one", "alice"); err != nil {
			return err
		}
		if second, err = s.CreatePost(ctx, "T2", "https://two", "carol"); err != nil {
			return err
		}
		_, err = s.CreateComment(ctx, first.ID, "hi", "bob")
		return err
	}))

	var rows []PostCommentRow
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		rows, err = s.ListPostRows(ctx)
		return err
	}))

	posts := AggregatePosts(rows)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "hi", posts[0].Comments[0].Text)
	assert.Empty(t, posts[1].Comments)

	// Single-post lookup returns only that post's rows.
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		rows, err = s.GetPostRows(ctx, second.ID)
		return err
	}))
	posts = AggregatePosts(rows)
	require.Len(t, posts, 1)
	assert.Equal(t, second.ID, posts[0].ID)

	// Deleting an unknown id affects zero rows.
	err := m.Transact(ctx, func(s *Session) error {
		return s.DeletePost(ctx, 9999)
	})
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an existing id commits and is unobservable afterward.
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		return s.DeletePost(ctx, first.ID)
	}))
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		rows, err = s.GetPostRows(ctx, first.ID)
		return err
	}))
	assert.Empty(t, rows)
}

func TestDeletePost_CascadesToComments(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	var post *Post
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		if post, err = s.CreatePost(ctx, "T", "https://l", "alice"); err != nil {
			return err
		}
		if _, err = s.CreateComment(ctx, post.ID, "one", "bob"); err != nil {
			return err
		}
		_, err = s.CreateComment(ctx, post.ID, "two", "carol")
		return err
	}))

	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		return s.DeletePost(ctx, post.ID)
	}))

	// The foreign key cascade removes the comments with the post.
	var orphans int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&orphans))
	assert.Equal(t, 0, orphans)

	var comments []Comment
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		comments, err = s.ListComments(ctx, post.ID)
		return err
	}))
	assert.Empty(t, comments)
}

func TestCreateComment_RejectsMissingPost(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	err := m.Transact(ctx, func(s *Session) error {
		_, err := s.CreateComment(ctx, 9999, "hi", "bob")
		return err
	})
	require.Error(t, err, "foreign key enforcement must reject the orphan comment")
}

func TestCommentStore_UpdateScopedToPost(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	var post *Post
	var comment *Comment
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		if post, err = s.CreatePost(ctx, "T", "https://l", "alice"); err != nil {
			return err
		}
		comment, err = s.CreateComment(ctx, post.ID, "original", "bob")
		return err
	}))

	// Editing through the wrong post id matches nothing.
	err := m.Transact(ctx, func(s *Session) error {
		_, err := s.UpdateCommentText(ctx, post.ID+1, comment.ID, "sneaky")
		return err
	})
	require.ErrorIs(t, err, ErrNotFound)

	var updated *Comment
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		updated, err = s.UpdateCommentText(ctx, post.ID, comment.ID, "edited")
		return err
	}))
	assert.Equal(t, comment.ID, updated.ID)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, "bob", updated.Username)
}

func TestUserStore_SoftDeleteAndPaging(t *testing.T) {
	db := newTestDB(t)
	m := NewManager(db)
	ctx := context.Background()

	names := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	var third *User
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		for _, name := range names {
			u, err := s.CreateUser(ctx, name)
			if err != nil {
				return err
			}
			if name == "u3" {
				third = u
			}
		}
		return nil
	}))

	var page []*User
	var total int
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		if page, err = s.ListActiveUsers(ctx, 5, 5); err != nil {
			return err
		}
		total, err = s.CountActiveUsers(ctx)
		return err
	}))
	require.Len(t, page, 2)
	assert.Equal(t, "u6", page[0].Username)
	assert.Equal(t, 7, total)

	// Soft delete hides the user from listings and the count.
	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		return s.SoftDeleteUser(ctx, third.ID)
	}))

	require.NoError(t, m.Transact(ctx, func(s *Session) error {
		var err error
		if page, err = s.ListActiveUsers(ctx, 10, 0); err != nil {
			return err
		}
		total, err = s.CountActiveUsers(ctx)
		return err
	}))
	require.Len(t, page, 6)
	assert.Equal(t, 6, total)
	for _, u := range page {
		assert.NotEqual(t, "u3", u.Username)
	}

	// Deleting again is a not-found, not a second update.
	err := m.Transact(ctx, func(s *Session) error {
		return s.SoftDeleteUser(ctx, third.ID)
	})
	require.ErrorIs(t, err, ErrNotFound)
}
