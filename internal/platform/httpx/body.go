package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultBodyLimit caps JSON request bodies.
const DefaultBodyLimit = 16 * 1024

var (
	// ErrEmptyBody is returned when a request carries no JSON payload.
	ErrEmptyBody = errors.New("request body is empty")
	// ErrBodyTooLarge is returned when the payload exceeds the limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrTrailingData is returned when the payload holds more than one JSON value.
	ErrTrailingData = errors.New("invalid json: unexpected data after top-level value")
)

// DecodeJSON reads at most limit bytes from the request and unmarshals them into dst.
// Unknown fields and data after the first JSON value are rejected.
func DecodeJSON(r *http.Request, limit int64, dst any) error {
	data, err := readLimitedBody(r, limit)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// BodyError maps DecodeJSON failures to an envelope.
func BodyError(err error) Error {
	switch {
	case errors.Is(err, ErrEmptyBody):
		return NewError("empty_body", "request body is required", http.StatusBadRequest)
	case errors.Is(err, ErrBodyTooLarge):
		return NewError("body_too_large", "request body exceeds limit", http.StatusRequestEntityTooLarge)
	default:
		return NewError("invalid_json", err.Error(), http.StatusBadRequest)
	}
}

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, ErrEmptyBody
	}
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}
