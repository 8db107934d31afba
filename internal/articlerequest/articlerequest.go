package articlerequest

import (
	"fmt"
	"net/http"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// MissingFieldError reports the first required field that was absent or
// null in a creation payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing '%s' in request body", e.Field)
}

// ArticleRequest is the request payload for creating an Article.
//
// Fields are pointers so that an absent key and an explicit JSON null both
// decode to nil. Any "id" sent by the client is not part of the payload and
// is dropped on decode.
type ArticleRequest struct {
	Title   *string `json:"title"`
	Style   *string `json:"style"`
	Content *string `json:"content"`
}

// Bind runs after the unmarshalling is complete. It rejects the payload on
// the first missing field, checked in the order title, style, content.
// Empty strings are present values.
func (a *ArticleRequest) Bind(r *http.Request) error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", a.Title},
		{"style", a.Style},
		{"content", a.Content},
	}
	for _, f := range required {
		if f.value == nil {
			return &MissingFieldError{Field: f.name}
		}
	}

	return nil
}

// NewArticle converts a bound request into the insert input. It must only
// be called after Bind succeeded.
func (a *ArticleRequest) NewArticle() model.NewArticle {
	return model.NewArticle{
		Title:   *a.Title,
		Style:   *a.Style,
		Content: *a.Content,
	}
}
