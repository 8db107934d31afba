package article

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

func TestMemStoreAssignsIncreasingIDs(t *testing.T) {
	now := time.Date(2029, time.January, 22, 16, 28, 32, 0, time.UTC)
	s := NewMemStore(
		model.NewArticle{Title: "First test post!", Style: "How-to", Content: "a"},
		model.NewArticle{Title: "Second test post!", Style: "News", Content: "b"},
	).WithClock(func() time.Time { return now })
	ctx := context.Background()

	a, err := s.InsertArticle(ctx, model.NewArticle{Title: "t", Style: "Listicle", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, &model.Article{ID: 3, Title: "t", Style: "Listicle", Content: "c", DatePublished: now}, a)

	list, err := s.GetAllArticles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, a := range list {
		assert.Equal(t, int64(i+1), a.ID)
	}
}

func TestMemStoreGetByID(t *testing.T) {
	s := NewMemStore(model.NewArticle{Title: "t", Style: "s", Content: "c"})
	ctx := context.Background()

	a, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "t", a.Title)

	a, err = s.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestMemStoreReturnsCopies(t *testing.T) {
	s := NewMemStore(model.NewArticle{Title: "t", Style: "s", Content: "c"})
	ctx := context.Background()

	a, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	a.Title = "changed"

	b, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "t", b.Title)
}

func TestMemStoreEmptyList(t *testing.T) {
	list, err := NewMemStore().GetAllArticles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMemStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemStore()
	_, err := s.GetAllArticles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.InsertArticle(ctx, model.NewArticle{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemStoreConcurrentInsertsNeverReuseIDs(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.InsertArticle(ctx, model.NewArticle{Title: "t", Style: "s", Content: "c"})
			if err == nil {
				ids <- a.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
