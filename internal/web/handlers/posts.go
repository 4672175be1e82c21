package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/boardwalk-app/boardwalk/internal/database"
)

type createPostRequest struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Username string `json:"username"`
}

// ListPosts returns every post with its nested comments.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	var rows []database.PostCommentRow
	err := h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		rows, err = s.ListPostRows(r.Context())
		return err
	})
	if err != nil {
		h.respondError(w, err, "No posts found")
		return
	}

	posts := database.AggregatePosts(rows)
	if posts == nil {
		posts = []*database.Post{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// GetPost returns one post with its nested comments, 404 when the join
// yields no rows.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, "id", "post ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var rows []database.PostCommentRow
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		rows, err = s.GetPostRows(r.Context(), postID)
		return err
	})
	if err != nil {
		h.respondError(w, err, "Post not found")
		return
	}

	posts := database.AggregatePosts(rows)
	if len(posts) == 0 {
		h.jsonError(w, fmt.Sprintf("No post found with id = %d", postID), http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// CreatePost creates a post from a JSON body {title, link, username}.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err, "")
		return
	}

	title, err := requiredField(req.Title, "title")
	if err != nil {
		h.respondError(w, err, "")
		return
	}
	link, err := requiredField(req.Link, "link")
	if err != nil {
		h.respondError(w, err, "")
		return
	}
	username, err := requiredField(req.Username, "username")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var post *database.Post
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		post, err = s.CreatePost(r.Context(), title, link, username)
		return err
	})
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	log.Info().Int64("post_id", post.ID).Str("username", username).Msg("Post created")
	h.writeJSON(w, http.StatusCreated, map[string]any{"post": post})
}

// DeletePost deletes a post and its comments, 404 when nothing was deleted.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, "id", "post ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		return s.DeletePost(r.Context(), postID)
	})
	if err != nil {
		h.respondError(w, err, "Post not found")
		return
	}

	log.Info().Int64("post_id", postID).Msg("Post deleted")
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// parseID reads a numeric chi URL param.
func parseID(r *http.Request, param, label string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, ValidationError{Field: label, Message: "must be an integer"}
	}
	return id, nil
}
