package article

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// Table is the relation every query runs against.
const Table = "blogful_articles"

const (
	selectAllSQL = `SELECT id, title, style, content, date_published FROM ` + Table + ` ORDER BY id`
	selectOneSQL = `SELECT id, title, style, content, date_published FROM ` + Table + ` WHERE id = $1`
	insertSQL    = `INSERT INTO ` + Table + ` (title, style, content) VALUES ($1, $2, $3)
		RETURNING id, title, style, content, date_published`
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore reads and writes articles in Postgres.
type PGStore struct {
	db Querier
}

var _ Store = (*PGStore)(nil)

func NewPGStore(db Querier) *PGStore {
	return &PGStore{db: db}
}

// GetAllArticles returns every row ordered by id ascending.
func (s *PGStore) GetAllArticles(ctx context.Context) ([]*model.Article, error) {
	rows, err := s.db.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, errors.Wrap(err, "select articles")
	}
	defer rows.Close()

	list := []*model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan article")
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "select articles")
	}

	return list, nil
}

func (s *PGStore) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	a, err := scanArticle(s.db.QueryRow(ctx, selectOneSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select article %d", id)
	}

	return a, nil
}

func (s *PGStore) InsertArticle(ctx context.Context, article model.NewArticle) (*model.Article, error) {
	a, err := scanArticle(s.db.QueryRow(ctx, insertSQL, article.Title, article.Style, article.Content))
	if err != nil {
		return nil, errors.Wrap(err, "insert article")
	}

	return a, nil
}

func scanArticle(row pgx.Row) (*model.Article, error) {
	a := &model.Article{}
	if err := row.Scan(&a.ID, &a.Title, &a.Style, &a.Content, &a.DatePublished); err != nil {
		return nil, err
	}

	return a, nil
}
