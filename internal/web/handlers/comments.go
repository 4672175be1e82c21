package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/boardwalk-app/boardwalk/internal/database"
)

type createCommentRequest struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

type updateCommentRequest struct {
	Text string `json:"text"`
}

// ListComments returns the flat comment list for a post.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, "id", "post ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var comments []database.Comment
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		comments, err = s.ListComments(r.Context(), postID)
		return err
	})
	if err != nil {
		h.respondError(w, err, "No comments found")
		return
	}

	if comments == nil {
		comments = []database.Comment{}
	}
	h.writeJSON(w, http.StatusOK, comments)
}

// CreateComment creates a comment on a post from a JSON body
// {text, username}.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, "id", "post ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var req createCommentRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err, "")
		return
	}

	text, err := requiredField(req.Text, "text")
	if err != nil {
		h.respondError(w, err, "")
		return
	}
	username, err := requiredField(req.Username, "username")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var comment *database.Comment
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		comment, err = s.CreateComment(r.Context(), postID, text, username)
		return err
	})
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	log.Info().Int64("comment_id", comment.ID).Int64("post_id", postID).Msg("Comment created")
	h.writeJSON(w, http.StatusCreated, comment)
}

// UpdateComment replaces a comment's text, 404 when the (post, comment) pair
// does not exist.
func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r, "id", "post ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}
	commentID, err := parseID(r, "commentID", "comment ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var req updateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err, "")
		return
	}

	text, err := requiredField(req.Text, "text")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var comment *database.Comment
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		comment, err = s.UpdateCommentText(r.Context(), postID, commentID, text)
		return err
	})
	if err != nil {
		h.respondError(w, err, "Comment not found")
		return
	}

	h.writeJSON(w, http.StatusOK, comment)
}
