package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/boardwalk-app/boardwalk/internal/database"
)

type createUserRequest struct {
	Username string `json:"username"`
}

// ListUsers returns one page of active users plus a pagination envelope.
// The page and the total count run in the same unit of work.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := ParsePageParams(query.Get("pageSize"), query.Get("pageNumber"), h.maxPageSize)
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var (
		users []*database.User
		total int
	)
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		if users, err = s.ListActiveUsers(r.Context(), page.Limit(), page.Offset()); err != nil {
			return err
		}
		total, err = s.CountActiveUsers(r.Context())
		return err
	})
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	if users == nil {
		users = []*database.User{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"data": users,
		"pagination": Pagination{
			PageNumber:   page.Number,
			PageSize:     page.Size,
			TotalRecords: total,
		},
	})
}

// CreateUser creates a user from a JSON body {username}.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, err, "")
		return
	}

	username, err := requiredField(req.Username, "username")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	var user *database.User
	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		var err error
		user, err = s.CreateUser(r.Context(), username)
		return err
	})
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	log.Info().Int64("user_id", user.ID).Str("username", username).Msg("User created")
	h.writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// DeleteUser soft deletes a user. The record stays in the table; it just
// stops showing up anywhere.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "id", "user ID")
	if err != nil {
		h.respondError(w, err, "")
		return
	}

	err = h.sessions.Transact(r.Context(), func(s *database.Session) error {
		return s.SoftDeleteUser(r.Context(), userID)
	})
	if err != nil {
		h.respondError(w, err, "User not found")
		return
	}

	log.Info().Int64("user_id", userID).Msg("User deleted")
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
