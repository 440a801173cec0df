package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		A int `json:"a"`
	}

	tests := []struct {
		name    string
		body    string
		want    int
		wantErr error
		code    string
	}{
		{name: "single value", body: `{"a":1}`, want: 1},
		{name: "trailing whitespace", body: "{\"a\":1}\n  ", want: 1},
		{name: "second value", body: `{"a":1}{"a":2}`, wantErr: ErrTrailingData, code: "invalid_json"},
		{name: "trailing garbage", body: `{"a":1} trailing`, wantErr: ErrTrailingData, code: "invalid_json"},
		{name: "empty", body: "   ", wantErr: ErrEmptyBody, code: "empty_body"},
		{name: "too large", body: `{"a":1` + strings.Repeat(" ", 64) + `}`, wantErr: ErrBodyTooLarge, code: "body_too_large"},
		{name: "unknown field", body: `{"b":1}`, code: "invalid_json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var got payload
			err := DecodeJSON(req, 32, &got)

			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.A != tc.want {
					t.Fatalf("expected a=%d, got %d", tc.want, got.A)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error for %q", tc.body)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if env := BodyError(err); env.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, env.Code)
			}
		})
	}
}
