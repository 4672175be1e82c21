package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardwalk-app/boardwalk/internal/database"
	"github.com/boardwalk-app/boardwalk/internal/web"
)

func newTestRouter(t *testing.T, maxPageSize int) http.Handler {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())

	return web.NewServer(db, 0, "", nil, maxPageSize).Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t, 0)

	// Empty board lists as an empty collection, not a 404.
	rec := doJSON(t, router, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Posts []database.Post `json:"posts"`
	}
	decode(t, rec, &listing)
	assert.Empty(t, listing.Posts)

	// Create a post.
	rec = doJSON(t, router, http.MethodPost, "/api/posts", map[string]string{
		"title":    "T1",
		"link":     "https://example.com",
		"username": "alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Post database.Post `json:"post"`
	}
	decode(t, rec, &created)
	require.NotZero(t, created.Post.ID)
	assert.Equal(t, int64(0), created.Post.Upvotes)

	postID := created.Post.ID

	// Comment on it.
	rec = doJSON(t, router, http.MethodPost, "/api/posts/1/comments", map[string]string{
		"text":     "hi",
		"username": "bob",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var comment database.Comment
	decode(t, rec, &comment)
	assert.Equal(t, postID, comment.PostID)
	assert.Equal(t, "hi", comment.Text)

	// Listing nests the comment under the post.
	rec = doJSON(t, router, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &listing)
	require.Len(t, listing.Posts, 1)
	require.Len(t, listing.Posts[0].Comments, 1)
	assert.Equal(t, comment.ID, listing.Posts[0].Comments[0].ID)

	// Single-post lookup.
	rec = doJSON(t, router, http.MethodGet, "/api/posts/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &listing)
	require.Len(t, listing.Posts, 1)

	// Edit the comment.
	rec = doJSON(t, router, http.MethodPut, "/api/posts/1/comments/1", map[string]string{
		"text": "edited",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &comment)
	assert.Equal(t, "edited", comment.Text)

	// Editing a missing comment is a 404.
	rec = doJSON(t, router, http.MethodPut, "/api/posts/1/comments/99", map[string]string{
		"text": "nope",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Delete, then delete again.
	rec = doJSON(t, router, http.MethodDelete, "/api/posts/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/posts/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The post is gone from lookups too.
	rec = doJSON(t, router, http.MethodGet, "/api/posts/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePostValidation(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := doJSON(t, router, http.MethodPost, "/api/posts", map[string]string{
		"title":    "   ",
		"link":     "https://example.com",
		"username": "alice",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Contains(t, body["error"], "title")
}

func TestUsersPagination(t *testing.T) {
	router := newTestRouter(t, 0)

	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"} {
		rec := doJSON(t, router, http.MethodPost, "/api/users", map[string]string{"username": name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var resp struct {
		Data       []database.User `json:"data"`
		Pagination struct {
			PageNumber   int `json:"pageNumber"`
			PageSize     int `json:"pageSize"`
			TotalRecords int `json:"totalRecords"`
		} `json:"pagination"`
	}

	// Defaults: page 1, size 5.
	rec := doJSON(t, router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Len(t, resp.Data, 5)
	assert.Equal(t, 1, resp.Pagination.PageNumber)
	assert.Equal(t, 7, resp.Pagination.TotalRecords)

	// Second page holds the remainder.
	rec = doJSON(t, router, http.MethodGet, "/api/users?pageSize=5&pageNumber=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "u6", resp.Data[0].Username)

	// Invalid pagination params never reach the store.
	for _, path := range []string{
		"/api/users?pageSize=0",
		"/api/users?pageSize=-1&pageNumber=2",
		"/api/users?pageNumber=abc",
	} {
		rec = doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	// Soft delete shrinks the collection and the total.
	rec = doJSON(t, router, http.MethodDelete, "/api/users/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/users/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users?pageSize=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Len(t, resp.Data, 6)
	assert.Equal(t, 6, resp.Pagination.TotalRecords)
}

func TestMaxPageSizeRejectsOversizedRequests(t *testing.T) {
	router := newTestRouter(t, 10)

	rec := doJSON(t, router, http.MethodGet, "/api/users?pageSize=11", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users?pageSize=10", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHello(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello World!", rec.Body.String())
}
