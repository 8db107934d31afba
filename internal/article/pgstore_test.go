package article

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

var columns = []string{"id", "title", "style", "content", "date_published"}

func newMockStore(t *testing.T) (*PGStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return NewPGStore(mock), mock
}

func TestPGStoreGetAllArticles(t *testing.T) {
	s, mock := newMockStore(t)
	ts := time.Date(2029, time.January, 22, 16, 28, 32, 615000000, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1), "First test post!", "How-to", "Lorem", ts).
			AddRow(int64(2), "Second test post!", "News", "Ipsum", ts))

	list, err := s.GetAllArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*model.Article{
		{ID: 1, Title: "First test post!", Style: "How-to", Content: "Lorem", DatePublished: ts},
		{ID: 2, Title: "Second test post!", Style: "News", Content: "Ipsum", DatePublished: ts},
	}, list)
}

func TestPGStoreGetAllArticlesEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).
		WillReturnRows(pgxmock.NewRows(columns))

	list, err := s.GetAllArticles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPGStoreGetAllArticlesError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection refused")

	mock.ExpectQuery(regexp.QuoteMeta(selectAllSQL)).WillReturnError(boom)

	_, err := s.GetAllArticles(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestPGStoreGetByID(t *testing.T) {
	s, mock := newMockStore(t)
	ts := time.Date(2029, time.January, 22, 16, 28, 32, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(2), "Second test post!", "News", "Ipsum", ts))

	a, err := s.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, &model.Article{ID: 2, Title: "Second test post!", Style: "News", Content: "Ipsum", DatePublished: ts}, a)
}

func TestPGStoreGetByIDAbsent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectOneSQL)).
		WithArgs(int64(123456)).
		WillReturnError(pgx.ErrNoRows)

	a, err := s.GetByID(context.Background(), 123456)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestPGStoreInsertArticle(t *testing.T) {
	s, mock := newMockStore(t)
	ts := time.Date(2029, time.January, 22, 16, 28, 32, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(insertSQL)).
		WithArgs("Test new article", "Listicle", "Test new article content...").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(9), "Test new article", "Listicle", "Test new article content...", ts))

	a, err := s.InsertArticle(context.Background(), model.NewArticle{
		Title:   "Test new article",
		Style:   "Listicle",
		Content: "Test new article content...",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), a.ID)
	assert.Equal(t, ts, a.DatePublished)
}

func TestPGStoreInsertArticleError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("violates not-null constraint")

	mock.ExpectQuery(regexp.QuoteMeta(insertSQL)).
		WithArgs("", "", "").
		WillReturnError(boom)

	_, err := s.InsertArticle(context.Background(), model.NewArticle{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert article")
}
