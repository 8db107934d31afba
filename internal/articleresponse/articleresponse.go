package articleresponse

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// DateLayout renders date_published as a UTC instant with millisecond
// precision, e.g. 2029-01-22T16:28:32.615Z.
const DateLayout = "2006-01-02T15:04:05.000Z"

// ArticleResponse is the public representation of an Article. Every
// endpoint that returns an article goes through it, so list, get and create
// agree byte for byte.
//
// Render is called before the payload is marshalled and coerces the stored
// timestamp into a date string. The outer DatePublished field shadows the
// embedded one on encode.
type ArticleResponse struct {
	*model.Article

	DatePublished string `json:"date_published"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rd.DatePublished = FormatDate(rd.Article.DatePublished)

	return nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
