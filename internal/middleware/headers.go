package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var secureHeaders = [][2]string{
	{"X-DNS-Prefetch-Control", "off"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"Strict-Transport-Security", "max-age=15552000; includeSubDomains"},
	{"X-Download-Options", "noopen"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"Referrer-Policy", "no-referrer"},
	{"X-XSS-Protection", "0"},
}

// SecureHeaders sets the usual hardening headers on every response.
func SecureHeaders() func(http.Handler) http.Handler {
	mws := make(chi.Middlewares, 0, len(secureHeaders))
	for _, h := range secureHeaders {
		mws = append(mws, middleware.SetHeader(h[0], h[1]))
	}

	return func(next http.Handler) http.Handler {
		return mws.Handler(next)
	}
}

// CORS allows any origin, the same as an unconfigured cors() in front of a
// public API.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	})
}
