package middleware

import (
	"net/http"
	"strings"

	"finitefield.org/venue-admin/internal/platform/requestctx"
)

// View annotates the context with the admin base path and the request path so
// views can build links and mark the active navigation entry.
func View(basePath string) func(http.Handler) http.Handler {
	base := NormaliseBase(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestctx.WithView(r.Context(), requestctx.ViewInfo{
				BasePath:    base,
				RequestPath: r.URL.Path,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NoStore disables caching of rendered pages.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store, max-age=0")
			w.Header().Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}

// NormaliseBase returns base with a leading slash and no trailing slash. Empty
// input yields "/".
func NormaliseBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if base != "/" {
		base = strings.TrimRight(base, "/")
		if base == "" {
			return "/"
		}
	}
	return base
}
