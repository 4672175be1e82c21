package database

import "time"

// Post represents a board post with its nested comments.
type Post struct {
	ID       int64     `json:"id"`
	Upvotes  int64     `json:"upvotes"`
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	Username string    `json:"username"`
	Comments []Comment `json:"comments"`
}

// Comment represents a single comment on a post.
type Comment struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"post_id"`
	Upvotes  int64  `json:"upvotes"`
	Text     string `json:"text"`
	Username string `json:"username"`
}

// User represents an account. Soft-deleted users carry a deleted_at
// timestamp and are excluded from every query.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
