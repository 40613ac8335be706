package integration

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/oladokun-o/Micro-Feed/tests/integration/setup"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, app *fiber.App, token string, content string) map[string]interface{} {
	body := []byte(fmt.Sprintf(`{"content":%q}`, content))
	req := setup.CreateAuthRequest(http.MethodPost, "/api/posts/", body, token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "create post request should succeed")
	require.Equal(t, 201, resp.StatusCode, "create post should return 201")

	return setup.ParseJSONResponse(t, resp)
}

// TestPostLifecycle covers create, like, duplicate like, unlike, edit,
// foreign edit/delete rejection, and delete with like cleanup.
func TestPostLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("=== Starting Test Infrastructure ===")
	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	err = setup.RunMigration(infra.PgURL, t)
	require.NoError(t, err)

	app, db, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL)

	t.Cleanup(func() {
		setup.TruncateAllTables(t, db, ctx)
	})

	authorToken := registerUser(t, app, "author_"+setup.GenerateRandomString(8))
	readerToken := registerUser(t, app, "reader_"+setup.GenerateRandomString(8))

	t.Log("=== Create post ===")
	post := createPost(t, app, authorToken, "hello feed")
	postId := post["id"].(string)
	require.Equal(t, "hello feed", post["content"])
	require.Equal(t, float64(0), post["likeCount"])
	require.Equal(t, false, post["liked"])

	t.Log("=== Create post: empty content rejected ===")
	req := setup.CreateAuthRequest(http.MethodPost, "/api/posts/", []byte(`{"content":"   "}`), authorToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	t.Log("=== Create post: over 280 characters rejected ===")
	long := strings.Repeat("x", 281)
	req = setup.CreateAuthRequest(http.MethodPost, "/api/posts/", []byte(fmt.Sprintf(`{"content":%q}`, long)), authorToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	t.Log("=== Like by reader ===")
	req = setup.CreateAuthRequest(http.MethodPost, "/api/posts/"+postId+"/like", nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	t.Log("=== Second like is a conflict ===")
	req = setup.CreateAuthRequest(http.MethodPost, "/api/posts/"+postId+"/like", nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 409, resp.StatusCode)

	t.Log("=== Feed shows the like from the reader's view ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/posts/", nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	feed := setup.ParseJSONResponse(t, resp)
	posts := feed["posts"].([]interface{})
	require.Len(t, posts, 1)
	first := posts[0].(map[string]interface{})
	require.Equal(t, float64(1), first["likeCount"])
	require.Equal(t, true, first["liked"])

	t.Log("=== Unlike, then unlike again (idempotent) ===")
	req = setup.CreateAuthRequest(http.MethodDelete, "/api/posts/"+postId+"/like", nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	req = setup.CreateAuthRequest(http.MethodDelete, "/api/posts/"+postId+"/like", nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	t.Log("=== Edit by non-author is forbidden ===")
	req = setup.CreateAuthRequest(http.MethodPatch, "/api/posts/"+postId, []byte(`{"content":"hijacked"}`), readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	t.Log("=== Edit by author ===")
	req = setup.CreateAuthRequest(http.MethodPatch, "/api/posts/"+postId, []byte(`{"content":"hello feed, edited"}`), authorToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	edited := setup.ParseJSONResponse(t, resp)
	require.Equal(t, "hello feed, edited", edited["content"])

	t.Log("=== Delete by non-author is forbidden ===")
	req = setup.CreateAuthRequest(http.MethodDelete, "/api/posts/"+postId, nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	t.Log("=== Delete by author ===")
	req = setup.CreateAuthRequest(http.MethodDelete, "/api/posts/"+postId, nil, authorToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	t.Log("=== Deleted post is gone ===")
	req = setup.CreateAuthRequest(http.MethodPatch, "/api/posts/"+postId, []byte(`{"content":"ghost"}`), authorToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)

	t.Log("=== Liking a missing post is 404 ===")
	req = setup.CreateAuthRequest(http.MethodPost, "/api/posts/"+postId+"/like", nil, readerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}
