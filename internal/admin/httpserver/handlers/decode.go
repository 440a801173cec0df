package handlers

import (
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"finitefield.org/venue-admin/internal/platform/httpx"
)

var textPolicy = bluemonday.StrictPolicy()

// cleanRounds bounds how many layers of entity encoding cleanText unwraps.
const cleanRounds = 4

// decodeBody decodes a JSON request body into dst, writing the error envelope
// and returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, httpx.DefaultBodyLimit, dst); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BodyError(err))
		return false
	}
	return true
}

// cleanText strips markup from free text, keeping the plain characters.
// Entity-encoded markup is decoded and stripped again until the text is
// stable; text still changing after cleanRounds stays entity-escaped.
func cleanText(value string) string {
	text := value
	for i := 0; i < cleanRounds; i++ {
		next := html.UnescapeString(textPolicy.Sanitize(text))
		if next == text {
			return strings.TrimSpace(text)
		}
		text = next
	}
	return strings.TrimSpace(textPolicy.Sanitize(text))
}

func writeOK(w http.ResponseWriter, payload any) {
	httpx.WriteJSON(w, http.StatusOK, payload)
}

func writeCreated(w http.ResponseWriter, payload any) {
	httpx.WriteJSON(w, http.StatusCreated, payload)
}
