package article

import (
	"context"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// Store is the data access layer for articles.
//
// GetByID returns a nil article and a nil error when no row matches; only
// transport and constraint failures are reported as errors.
type Store interface {
	GetAllArticles(ctx context.Context) ([]*model.Article, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	InsertArticle(ctx context.Context, article model.NewArticle) (*model.Article, error)
}

// MemStore keeps articles in process memory. Ids come from a counter and
// are never reused.
type MemStore struct {
	mu       sync.RWMutex
	articles []*model.Article
	lastID   int64
	now      func() time.Time
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns a MemStore preloaded with fixtures. Fixture ids are
// assigned in order starting at 1.
func NewMemStore(fixtures ...model.NewArticle) *MemStore {
	s := &MemStore{now: time.Now}
	for _, f := range fixtures {
		s.insert(f)
	}

	return s
}

// WithClock replaces the clock used to default date_published.
func (s *MemStore) WithClock(now func() time.Time) *MemStore {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()

	return s
}

func (s *MemStore) GetAllArticles(ctx context.Context) ([]*model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		c := *a
		list = append(list, &c)
	}

	return list, nil
}

func (s *MemStore) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}

	return nil, nil
}

func (s *MemStore) InsertArticle(ctx context.Context, article model.NewArticle) (*model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := *s.insert(article)

	return &c, nil
}

// insert must be called with mu held, or before the store is shared.
func (s *MemStore) insert(article model.NewArticle) *model.Article {
	s.lastID++
	a := &model.Article{
		ID:            s.lastID,
		Title:         article.Title,
		Style:         article.Style,
		Content:       article.Content,
		DatePublished: s.now().UTC(),
	}
	s.articles = append(s.articles, a)

	return a
}
