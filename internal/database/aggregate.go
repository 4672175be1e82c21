package database

import "database/sql"

// PostCommentRow is one row of the posts-to-comments LEFT JOIN. The comment
// columns are all NULL when the post has no comments.
type PostCommentRow struct {
	PostID          int64
	PostUpvotes     int64
	Title           string
	Link            string
	Username        string
	CommentID       sql.NullInt64
	CommentUpvotes  sql.NullInt64
	CommentText     sql.NullString
	CommentUsername sql.NullString
}

// AggregatePosts flattens join rows into posts with nested comments in a
// single pass. Posts appear in first-seen order, comments per post in row
// order; no sorting happens here. Rows with a NULL comment id (outer-join
// miss) contribute the post only. Post scalar fields are taken from the
// first row for that id; repeats are assumed identical.
func AggregatePosts(rows []PostCommentRow) []*Post {
	var posts []*Post
	byID := make(map[int64]*Post)

	for _, row := range rows {
		post, ok := byID[row.PostID]
		if !ok {
			post = &Post{
				ID:       row.PostID,
				Upvotes:  row.PostUpvotes,
				Title:    row.Title,
				Link:     row.Link,
				Username: row.Username,
				Comments: []Comment{},
			}
			byID[row.PostID] = post
			posts = append(posts, post)
		}

		if row.CommentID.Valid {
			post.Comments = append(post.Comments, Comment{
				ID:       row.CommentID.Int64,
				PostID:   row.PostID,
				Upvotes:  row.CommentUpvotes.Int64,
				Text:     row.CommentText.String,
				Username: row.CommentUsername.String,
			})
		}
	}

	return posts
}
