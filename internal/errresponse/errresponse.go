package errresponse

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GenericMessage is the only detail a production 500 response carries.
const GenericMessage = "server error"

// ErrResponse renderer type for handling all sorts of errors.
//
// Body is always rendered under "error". Message is set only on
// non-production 500 responses, next to the full detail in Body.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Message string    `json:"message,omitempty"`
	Body    ErrorBody `json:"error"`
}

// ErrorBody is the client-visible error object.
type ErrorBody struct {
	Message string `json:"message"`

	// Diagnostic detail, non-production only.
	Detail     string `json:"detail,omitempty"`
	Code       string `json:"code,omitempty"`
	PGDetail   string `json:"pg_detail,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(message string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusBadRequest,
		Body:           ErrorBody{Message: message},
	}
}

func ErrNotFound(message string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusNotFound,
		Body:           ErrorBody{Message: message},
	}
}

// ErrServer builds a 500 response. In production it withholds everything
// about err.
func ErrServer(err error, production bool) render.Renderer {
	if production {
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusInternalServerError,
			Body:           ErrorBody{Message: GenericMessage},
		}
	}

	body := ErrorBody{
		Message: err.Error(),
		Detail:  fmt.Sprintf("%+v", err),
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		body.Code = pgErr.Code
		body.PGDetail = pgErr.Detail
		body.Constraint = pgErr.ConstraintName
		body.Table = pgErr.TableName
		body.Column = pgErr.ColumnName
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        err.Error(),
		Body:           body,
	}
}

// Handler is the terminal stage every unhandled failure ends up in.
type Handler struct {
	Production bool
	Logger     *zap.SugaredLogger
}

func NewHandler(production bool, logger *zap.SugaredLogger) *Handler {
	return &Handler{Production: production, Logger: logger}
}

// ServeError answers the request with a 500.
func (h *Handler) ServeError(w http.ResponseWriter, r *http.Request, err error) {
	if h.Production {
		h.Logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	} else {
		h.Logger.Errorf("request failed: %s %s: %+v", r.Method, r.URL.Path, err)
	}

	if rerr := render.Render(w, r, ErrServer(err, h.Production)); rerr != nil {
		h.Logger.Errorw(rerr.Error())
	}
}
