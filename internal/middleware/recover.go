package middleware

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrorHandler renders failures that escaped a handler.
type ErrorHandler interface {
	ServeError(w http.ResponseWriter, r *http.Request, err error)
}

// Recover turns a panic into an error and hands it to h, so panics are
// answered like any other unhandled failure. http.ErrAbortHandler is
// re-panicked as net/http expects.
func Recover(h ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				err, ok := rvr.(error)
				if !ok {
					err = fmt.Errorf("%v", rvr)
				}
				h.ServeError(w, r, errors.WithStack(err))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
