package api

import (
	"errors"
	"net/http"

	"github.com/nordique-ai/nordique/internal/core"
)

// httpStatus maps an error's domain category to a response status. Errors
// without a domain category fall through to internal.
func httpStatus(err error) int {
	switch core.GetCategory(err) {
	case core.ErrCatValidation:
		return http.StatusUnprocessableEntity
	case core.ErrCatNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError maps a domain error to an HTTP status and writes the
// structured error body.
func respondDomainError(w http.ResponseWriter, err error) {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr == nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := map[string]interface{}{
		"error": domErr.Message,
		"code":  domErr.Code,
	}
	if len(domErr.Details) > 0 {
		body["details"] = domErr.Details
	}
	respondJSON(w, httpStatus(err), body)
}
