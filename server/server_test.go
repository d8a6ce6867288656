package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustlingbird/chirprack/auth"
	"github.com/rustlingbird/chirprack/content"
	"github.com/rustlingbird/chirprack/reaction"
	"github.com/rustlingbird/chirprack/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := utils.NewTestDB(t)
	issuer := auth.NewTokenIssuer("server-test-secret")

	router := gin.New()
	New(
		auth.NewGateway(db, issuer),
		content.NewStore(db),
		reaction.NewLedger(db),
	).Register(router, issuer)
	return router
}

// doJSON performs a request with an optional bearer token and json body, and
// decodes the response body into a generic map.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	decoded := map[string]interface{}{}
	if recorder.Body.Len() > 0 && recorder.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder.Code, decoded
}

func signup(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	code, resp := doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{
		"email":     email,
		"firstName": "Test",
		"lastName":  "User",
		"hash":      "a very good password",
	})
	require.Equal(t, http.StatusCreated, code)
	token, _ := resp["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	signup(t, router, "alice@x.com")

	// Duplicate signup is rejected.
	code, resp := doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{
		"email":     "alice@x.com",
		"firstName": "Test",
		"lastName":  "User",
		"hash":      "a very good password",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "duplicate_user", resp["error"])

	// Wrong password.
	code, resp = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@x.com",
		"hash":  "not the password",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "bad_credentials", resp["error"])

	// Right password.
	code, resp = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@x.com",
		"hash":  "a very good password",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, resp["access_token"])

	// Malformed body.
	code, _ = doJSON(t, router, http.MethodPost, "/auth/signup", "", gin.H{"email": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAuthorizationRequired(t *testing.T) {
	router := newTestRouter(t)

	code, resp := doJSON(t, router, http.MethodGet, "/posts/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", resp["error"])

	code, _ = doJSON(t, router, http.MethodGet, "/posts/all", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := signup(t, router, "alice@x.com")
	code, _ = doJSON(t, router, http.MethodGet, "/posts/all", token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "alice@x.com")

	code, post := doJSON(t, router, http.MethodPost, "/posts", token, gin.H{
		"title":   "Hello",
		"content": "World",
	})
	require.Equal(t, http.StatusCreated, code)
	postID, _ := post["id"].(string)
	require.NotEmpty(t, postID)
	author, _ := post["author"].(map[string]interface{})
	require.NotNil(t, author)
	assert.Nil(t, author["hash"], "password digest must never be serialized")

	code, updated := doJSON(t, router, http.MethodPatch, "/posts?postId="+postID, token, gin.H{
		"title": "Hello again",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello again", updated["title"])
	assert.Equal(t, "World", updated["content"])

	code, single := doJSON(t, router, http.MethodGet, "/posts?id="+postID, token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello again", single["title"])

	code, _ = doJSON(t, router, http.MethodGet, "/posts/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, router, http.MethodDelete, "/posts?postid="+postID, token, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp := doJSON(t, router, http.MethodDelete, "/posts?postid="+postID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", resp["error"])
}

// TestReactionScenario is the canonical flow: alice posts, bob likes once,
// cannot like twice, then his dislike replaces the like.
func TestReactionScenario(t *testing.T) {
	router := newTestRouter(t)
	alice := signup(t, router, "alice@x.com")
	bob := signup(t, router, "bob@x.com")

	code, post := doJSON(t, router, http.MethodPost, "/posts", alice, gin.H{
		"title":   "Hello",
		"content": "World",
	})
	require.Equal(t, http.StatusCreated, code)
	postID := post["id"].(string)

	code, _ = doJSON(t, router, http.MethodPost, "/posts/like?id="+postID, bob, nil)
	require.Equal(t, http.StatusCreated, code)

	code, resp := doJSON(t, router, http.MethodPost, "/posts/like?id="+postID, bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "already_reacted", resp["error"])

	code, _ = doJSON(t, router, http.MethodPost, "/posts/dislike?id="+postID, bob, nil)
	require.Equal(t, http.StatusCreated, code)

	code, likes := doJSON(t, router, http.MethodGet, "/posts/like?id="+postID, bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, likes["count"])

	code, dislikes := doJSON(t, router, http.MethodGet, "/posts/dislike?id="+postID, bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, dislikes["count"])
}

func TestCommentAndReplyRoutes(t *testing.T) {
	router := newTestRouter(t)
	alice := signup(t, router, "alice@x.com")
	bob := signup(t, router, "bob@x.com")

	code, post := doJSON(t, router, http.MethodPost, "/posts", alice, gin.H{
		"title":   "Hello",
		"content": "World",
	})
	require.Equal(t, http.StatusCreated, code)
	postID := post["id"].(string)

	// POST /posts with a postId query creates a comment.
	code, comment := doJSON(t, router, http.MethodPost, "/posts?postId="+postID, bob, gin.H{
		"content": "nice post",
	})
	require.Equal(t, http.StatusCreated, code)
	commentID := comment["id"].(string)

	code, page := doJSON(t, router, http.MethodGet, "/posts/comments?postId="+postID, bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, page["totalComments"])

	code, edited := doJSON(t, router, http.MethodPatch, "/posts/comments?commentId="+commentID, bob, gin.H{
		"content": "edited",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "edited", edited["content"])

	code, like := doJSON(t, router, http.MethodPost, "/posts/comments/like?commentId="+commentID, alice, nil)
	require.Equal(t, http.StatusCreated, code)
	likeID := like["id"].(string)

	code, _ = doJSON(t, router, http.MethodDelete, "/posts/comments/like?commentLikeId="+likeID, alice, nil)
	require.Equal(t, http.StatusOK, code)

	code, reply := doJSON(t, router, http.MethodPost,
		"/posts/comments/reply?commentId="+commentID+"&postId="+postID, alice, gin.H{
			"content": "thanks",
		})
	require.Equal(t, http.StatusCreated, code)
	replyID := reply["id"].(string)

	code, replies := doJSON(t, router, http.MethodGet, "/posts/comments/reply?postId="+postID, alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, replies["totalReplies"])

	code, myReplies := doJSON(t, router, http.MethodGet, "/posts/comments/reply/me", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, myReplies["totalReplies"])

	code, _ = doJSON(t, router, http.MethodDelete, "/posts/comments/reply?commentReplyId="+replyID, alice, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, router, http.MethodDelete, "/posts/comments?commentId="+commentID, bob, nil)
	require.Equal(t, http.StatusOK, code)

	// Missing query parameter is a validation failure, not a panic.
	code, resp := doJSON(t, router, http.MethodDelete, "/posts/comments", bob, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_error", resp["error"])
}
