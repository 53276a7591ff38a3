package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postJSON struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Likes  []struct {
		UserID uint `json:"user"`
	} `json:"likes"`
	Comments []struct {
		ID     uint   `json:"id"`
		UserID uint   `json:"user"`
		Text   string `json:"text"`
	} `json:"comments"`
}

func TestPostLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	tokenU1 := registerTestUser(t, app, "U1", "u1@example.com")
	tokenU2 := registerTestUser(t, app, "U2", "u2@example.com")

	t.Run("posts require auth", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("empty text rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenU1, map[string]string{"text": "  "})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Text is required", firstErrorMsg(t, resp))
	})

	var post postJSON
	t.Run("create snapshots the author", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenU1, map[string]string{"text": "hello"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &post)
		assert.Equal(t, "hello", post.Text)
		assert.Equal(t, "U1", post.Name)
		assert.Contains(t, post.Avatar, "gravatar.com")
	})

	t.Run("feed is newest first", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenU2, map[string]string{"text": "second"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/api/posts", tokenU1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []postJSON
		decodeBody(t, resp, &posts)
		require.Len(t, posts, 2)
		assert.Equal(t, "second", posts[0].Text)
	})

	t.Run("fetch by id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), tokenU2, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got postJSON
		decodeBody(t, resp, &got)
		assert.Equal(t, post.Text, got.Text)
	})

	t.Run("unknown post id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/999", tokenU2, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "No post found with that ID", firstErrorMsg(t, resp))
	})

	t.Run("only the author deletes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), tokenU2, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User not authorized", firstErrorMsg(t, resp))

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), tokenU1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), tokenU1, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestPostLikes(t *testing.T) {
	_, app := newTestServer(t)
	tokenU1 := registerTestUser(t, app, "U1", "like1@example.com")
	tokenU2 := registerTestUser(t, app, "U2", "like2@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenU1, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post postJSON
	decodeBody(t, resp, &post)

	likePath := fmt.Sprintf("/api/posts/like/%d", post.ID)
	unlikePath := fmt.Sprintf("/api/posts/unlike/%d", post.ID)

	t.Run("like adds the caller", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, likePath, tokenU2, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var likes []struct {
			UserID uint `json:"user"`
		}
		decodeBody(t, resp, &likes)
		require.Len(t, likes, 1)
	})

	t.Run("double like is rejected and count unchanged", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, likePath, tokenU2, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "User already liked this post", firstErrorMsg(t, resp))

		resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), tokenU2, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got postJSON
		decodeBody(t, resp, &got)
		assert.Len(t, got.Likes, 1)
	})

	t.Run("unlike removes the caller", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, unlikePath, tokenU2, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var likes []struct {
			UserID uint `json:"user"`
		}
		decodeBody(t, resp, &likes)
		assert.Len(t, likes, 0)
	})

	t.Run("unlike without a like is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, unlikePath, tokenU2, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Post has not yet been liked", firstErrorMsg(t, resp))
	})
}

func TestPostComments(t *testing.T) {
	_, app := newTestServer(t)
	tokenU1 := registerTestUser(t, app, "U1", "comment1@example.com")
	tokenU2 := registerTestUser(t, app, "U2", "comment2@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", tokenU1, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post postJSON
	decodeBody(t, resp, &post)

	commentPath := fmt.Sprintf("/api/posts/comment/%d", post.ID)

	t.Run("empty comment rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, commentPath, tokenU2, map[string]string{"text": ""})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	var commentID uint
	t.Run("comment is added newest first", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, commentPath, tokenU2, map[string]string{"text": "first comment"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var comments []struct {
			ID   uint   `json:"id"`
			Text string `json:"text"`
			Name string `json:"name"`
		}
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "U2", comments[0].Name)
		commentID = comments[0].ID
	})

	t.Run("unknown comment id is not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("%s/999", commentPath), tokenU2, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Comment does not exist", firstErrorMsg(t, resp))
	})

	t.Run("only the comment author removes it", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("%s/%d", commentPath, commentID), tokenU1, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User not authorized", firstErrorMsg(t, resp))

		resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("%s/%d", commentPath, commentID), tokenU2, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var comments []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &comments)
		assert.Len(t, comments, 0)
	})
}
