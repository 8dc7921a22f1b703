package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryBool(r *http.Request, key string) *bool {
	if v := r.URL.Query().Get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return &b
		}
	}
	return nil
}

// pagination reads page and limit. Missing or unparsable values are left at
// zero so the filter's defaults apply.
func pagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}
	return page, limit
}

// urlID returns the {id} path parameter, rejecting malformed ids before they
// reach the database.
func urlID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		return "", validator.ValidationErrors{{Field: "id", Message: "invalid id format"}}
	}
	return id, nil
}
