package article

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/model"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
// An id that is not an integer cannot match any row.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil {
			a.renderError(w, r, errresponse.ErrNotFound(msgNotFound))
			return
		}

		article, err := a.store.GetByID(r.Context(), id)
		if err != nil {
			a.errh.ServeError(w, r, err)
			return
		}
		if article == nil {
			a.renderError(w, r, errresponse.ErrNotFound(msgNotFound))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithArticle(r.Context(), article)))
	})
}

func WithArticle(ctx context.Context, article *model.Article) context.Context {
	return context.WithValue(ctx, ctxKeyArticle, article)
}

func ArticleFromContext(ctx context.Context) (*model.Article, bool) {
	article, ok := ctx.Value(ctxKeyArticle).(*model.Article)

	return article, ok && article != nil
}
