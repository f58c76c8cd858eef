package middlewares

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recovery converts downstream panics into clean 500s. The panic and stack
// stay in the server log only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				rid := GetRequestID(r)
				if rid == "" {
					rid = "unknown"
				}
				log.Printf("[PANIC] rid=%s %s %s: %v\n%s", rid, r.Method, r.URL.Path, err, debug.Stack())
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
