package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"marquee/internal/utils"
)

// requestIDMiddleware tags every request with an X-Request-ID header,
// generating one when the client did not send its own.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *utils.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug(r.Method, r.URL.Path, r.RemoteAddr)
			next.ServeHTTP(w, r)
		})
	}
}

// recoverMiddleware converts panics into the generic 500 envelope. The
// panic detail only reaches the client in debug mode.
func recoverMiddleware(logger *utils.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic serving", r.URL.Path, ":", rec)
					message := "Internal server error"
					if logger.IsDebug() {
						message = fmt.Sprint(rec)
					}
					respondError(w, http.StatusInternalServerError, "internal_error", message)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
