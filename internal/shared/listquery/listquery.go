// Package listquery parses cursor paging query parameters for list handlers.
package listquery

import (
	"net/http"
	"strconv"

	"carebase/internal/shared/repository"
	dErrors "carebase/pkg/domain-errors"
)

// Parse reads ?cursor= and ?limit= into ListParams. The limit is what the
// caller requested; stores clamp it, and the response echoes the ACTUAL item
// count, never this value.
func Parse(r *http.Request) (repository.ListParams, error) {
	params := repository.ListParams{
		Cursor: r.URL.Query().Get("cursor"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return repository.ListParams{}, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer")
		}
		params.Limit = limit
	}
	return params, nil
}
