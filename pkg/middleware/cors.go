package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin; auth travels in headers, not cookies.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "x-access-token"},
		MaxAge:         300,
	})
}
