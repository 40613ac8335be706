package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oladokun-o/Micro-Feed/tests/integration/setup"
	"github.com/stretchr/testify/require"
)

// TestFeedPagination creates 25 posts and walks them in pages of 10,
// checking page boundaries, cursor hand-off, and termination.
func TestFeedPagination(t *testing.T) {
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

	token := registerUser(t, app, "walker_"+setup.GenerateRandomString(8))

	t.Log("=== Creating 25 posts ===")
	for i := 1; i <= 25; i++ {
		createPost(t, app, token, fmt.Sprintf("post number %02d", i))
	}

	seen := map[string]bool{}

	fetchPage := func(cursor string) (posts []interface{}, nextCursor string, hasMore bool) {
		url := "/api/posts/?limit=10"
		if cursor != "" {
			url += "&cursor=" + cursor
		}

		req := setup.CreateAuthRequest(http.MethodGet, url, nil, token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		feed := setup.ParseJSONResponse(t, resp)
		posts = feed["posts"].([]interface{})
		if c, ok := feed["nextCursor"].(string); ok {
			nextCursor = c
		}
		hasMore, _ = feed["hasMore"].(bool)

		for _, p := range posts {
			id := p.(map[string]interface{})["id"].(string)
			require.False(t, seen[id], "post %s appeared on two pages", id)
			seen[id] = true
		}

		return posts, nextCursor, hasMore
	}

	t.Log("=== Page 1 ===")
	posts, cursor, hasMore := fetchPage("")
	require.Len(t, posts, 10)
	require.True(t, hasMore)
	require.NotEmpty(t, cursor)

	// Newest first.
	require.Equal(t, "post number 25", posts[0].(map[string]interface{})["content"])

	t.Log("=== Page 2 ===")
	posts, cursor, hasMore = fetchPage(cursor)
	require.Len(t, posts, 10)
	require.True(t, hasMore)
	require.NotEmpty(t, cursor)

	t.Log("=== Page 3 ===")
	posts, cursor, hasMore = fetchPage(cursor)
	require.Len(t, posts, 5)
	require.False(t, hasMore)
	require.Empty(t, cursor)

	require.Len(t, seen, 25, "every post seen exactly once")

	t.Log("=== Garbage cursor restarts from the top ===")
	req := setup.CreateAuthRequest(http.MethodGet, "/api/posts/?limit=10&cursor=not-a-cursor", nil, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	feed := setup.ParseJSONResponse(t, resp)
	require.Len(t, feed["posts"].([]interface{}), 10)
	require.Equal(t, "post number 25", feed["posts"].([]interface{})[0].(map[string]interface{})["content"])

	t.Log("=== Limit above the cap is clamped to 50 ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/posts/?limit=500", nil, token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	feed = setup.ParseJSONResponse(t, resp)
	require.Len(t, feed["posts"].([]interface{}), 25, "all 25 posts fit under the clamped limit")

	t.Log("=== Unknown filter is rejected ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/posts/?filter=theirs", nil, token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)
}

// TestFeedFilterAndSearch checks the mine filter and content search.
func TestFeedFilterAndSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

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

	daveToken := registerUser(t, app, "dave_"+setup.GenerateRandomString(8))
	erinToken := registerUser(t, app, "erin_"+setup.GenerateRandomString(8))

	createPost(t, app, daveToken, "coffee first thing")
	createPost(t, app, daveToken, "shipping the release")
	createPost(t, app, erinToken, "more Coffee please")

	t.Log("=== filter=mine shows only own posts ===")
	req := setup.CreateAuthRequest(http.MethodGet, "/api/posts/?filter=mine", nil, daveToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	feed := setup.ParseJSONResponse(t, resp)
	posts := feed["posts"].([]interface{})
	require.Len(t, posts, 2)

	t.Log("=== Search matches case-insensitively across authors ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/posts/?query=coffee", nil, daveToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	feed = setup.ParseJSONResponse(t, resp)
	posts = feed["posts"].([]interface{})
	require.Len(t, posts, 2)

	t.Log("=== Search and filter compose ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/posts/?query=coffee&filter=mine", nil, daveToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	feed = setup.ParseJSONResponse(t, resp)
	posts = feed["posts"].([]interface{})
	require.Len(t, posts, 1)
	require.Equal(t, "coffee first thing", posts[0].(map[string]interface{})["content"])
}

// TestFeedPaginationTimestampTie pins the tie-break: posts sharing one
// create_datetime are ordered by id descending, and pages cut inside the
// tie neither skip nor repeat a row.
func TestFeedPaginationTimestampTie(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

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

	token := registerUser(t, app, "tied_"+setup.GenerateRandomString(8))

	var authorId uuid.UUID
	err = db.QueryRow(ctx, "SELECT id FROM users LIMIT 1").Scan(&authorId)
	require.NoError(t, err)

	// Five posts with one shared timestamp and ids in a known byte order,
	// inserted directly so the collision is guaranteed.
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ids := []uuid.UUID{
		uuid.MustParse("00000000-0000-4000-8000-000000000001"),
		uuid.MustParse("00000000-0000-4000-8000-000000000002"),
		uuid.MustParse("00000000-0000-4000-8000-000000000003"),
		uuid.MustParse("00000000-0000-4000-8000-000000000004"),
		uuid.MustParse("00000000-0000-4000-8000-000000000005"),
	}

	for i, id := range ids {
		_, err = db.Exec(ctx,
			"INSERT INTO posts (id, author_id, content, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $4)",
			id, authorId, fmt.Sprintf("tied post %d", i+1), ts,
		)
		require.NoError(t, err)
	}

	wantOrder := []string{
		"00000000-0000-4000-8000-000000000005",
		"00000000-0000-4000-8000-000000000004",
		"00000000-0000-4000-8000-000000000003",
		"00000000-0000-4000-8000-000000000002",
		"00000000-0000-4000-8000-000000000001",
	}

	var gotOrder []string
	cursor := ""
	pages := 0

	for {
		url := "/api/posts/?limit=2"
		if cursor != "" {
			url += "&cursor=" + cursor
		}

		req := setup.CreateAuthRequest(http.MethodGet, url, nil, token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		feed := setup.ParseJSONResponse(t, resp)
		for _, p := range feed["posts"].([]interface{}) {
			gotOrder = append(gotOrder, p.(map[string]interface{})["id"].(string))
		}

		hasMore, _ := feed["hasMore"].(bool)
		if !hasMore {
			break
		}

		next, ok := feed["nextCursor"].(string)
		require.True(t, ok, "hasMore pages must carry a cursor")
		require.NotEqual(t, cursor, next, "cursor must advance inside the tie")
		cursor = next

		pages++
		require.Less(t, pages, 10, "pagination must terminate")
	}

	require.Equal(t, wantOrder, gotOrder, "tied rows ordered by id descending, no skip, no duplicate")
}
