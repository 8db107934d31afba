package article

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/articlerequest"
	"github.com/SergeyParamoshkin/articles/internal/articleresponse"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
)

const (
	msgNotFound       = "Article doesn't exist"
	msgInvalidRequest = "Invalid request body"
)

// ErrorHandler receives every failure a handler does not answer itself.
type ErrorHandler interface {
	ServeError(w http.ResponseWriter, r *http.Request, err error)
}

// API serves the articles resource.
type API struct {
	store  Store
	errh   ErrorHandler
	logger *zap.SugaredLogger
}

func NewAPI(store Store, errh ErrorHandler, logger *zap.SugaredLogger) *API {
	return &API{store: store, errh: errh, logger: logger}
}

// Routes mounts the resource:
//
//	GET  /              list
//	POST /              create
//	GET  /{articleID}   get by id
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", a.ListArticles)
	r.Post("/", a.CreateArticle)

	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(a.ArticleCtx) // Load the *Article on the request context
		r.Get("/", a.GetArticle)
	})

	return r
}

func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.store.GetAllArticles(r.Context())
	if err != nil {
		a.errh.ServeError(w, r, err)
		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		a.errh.ServeError(w, r, err)
	}
}

// CreateArticle validates the posted Article, persists it and returns the
// stored row along with its location.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	err := render.Bind(r, data)
	if errors.Is(err, io.EOF) {
		// an empty body is an empty object
		err = data.Bind(r)
	}

	var missing *articlerequest.MissingFieldError
	switch {
	case errors.As(err, &missing):
		a.renderError(w, r, errresponse.ErrInvalidRequest(missing.Error()))
		return
	case err != nil:
		a.logger.Debugw("decode article request", "error", err)
		a.renderError(w, r, errresponse.ErrInvalidRequest(msgInvalidRequest))
		return
	}

	article, err := a.store.InsertArticle(r.Context(), data.NewArticle())
	if err != nil {
		a.errh.ServeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/articles/%d", article.ID))
	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		a.logger.Errorw(err.Error())
	}
}

// GetArticle returns the Article loaded by ArticleCtx.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := ArticleFromContext(r.Context())
	if !ok {
		a.errh.ServeError(w, r, errors.New("article missing from request context"))
		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		a.errh.ServeError(w, r, err)
	}
}

func (a *API) renderError(w http.ResponseWriter, r *http.Request, rd render.Renderer) {
	if err := render.Render(w, r, rd); err != nil {
		a.logger.Errorw(err.Error())
	}
}
