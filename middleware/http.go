package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
)

// CORS allows the configured origin ("*" for any) to call the API.
func CORS(origin string) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if origin != "" && origin != "*" {
		origins = strings.Split(origin, ",")
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "x-api-key", "X-Requested-With"}),
		handlers.ExposedHeaders([]string{"Content-Disposition", "X-Archive-URI"}),
	)
}

// AccessLog writes Apache combined-format request lines to stdout.
func AccessLog(next http.Handler) http.Handler {
	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

// Recover turns handler panics into 500 responses.
func Recover(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(next)
}
