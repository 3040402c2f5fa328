package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var (
	corsAllowedHeaders = []string{"Accept", "Content-Type", RequestIDHeader}
	corsExposedHeaders = []string{RequestIDHeader}
)

// CORS returns the console policy: only the configured origins may call
// the admin routes.
func CORS(allowedOrigins []string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: corsExposedHeaders,
		MaxAge:         86400,
	})
}

// OpenCORS returns the policy for routes called by field devices: any
// origin, POST only, no credentials.
func OpenCORS() Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:   corsAllowedHeaders,
		ExposedHeaders:   corsExposedHeaders,
		AllowCredentials: false,
		MaxAge:           86400,
	})
}
