//go:build !integration
// +build !integration

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/server"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Store = config.StoreMemory
	now := time.Date(2029, time.January, 22, 16, 28, 32, 615000000, time.UTC)
	store := article.NewMemStore().WithClock(func() time.Time { return now })

	srv := httptest.NewServer(server.New(cfg, zap.NewNop().Sugar(), store, nil).Router())
	t.Cleanup(srv.Close)

	return &Client{Addr: srv.URL, Client: http.Client{Timeout: 5 * time.Second}}
}

func TestPing(t *testing.T) {
	c := newTestClient(t)

	s, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pong", s)
}

func TestCreateThenGet(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	list, err := c.ListArticles(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, location, err := c.CreateArticle(ctx, NewArticle{
		Title:   String("Test new article"),
		Style:   String("Listicle"),
		Content: String("Test new article content..."),
	})
	require.NoError(t, err)

	want := &Article{
		ID:            1,
		Title:         "Test new article",
		Style:         "Listicle",
		Content:       "Test new article content...",
		DatePublished: "2029-01-22T16:28:32.615Z",
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Errorf("created article mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/articles/1", location)

	got, err := c.GetArticle(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("fetched article mismatch (-created +fetched):\n%s", diff)
	}

	list, err = c.ListArticles(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]Article{*want}, list); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.GetArticle(ctx, 123456)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Article doesn't exist", apiErr.Message)

	_, _, err = c.CreateArticle(ctx, NewArticle{Title: String("t"), Content: String("c")})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Missing 'style' in request body", apiErr.Message)
}
