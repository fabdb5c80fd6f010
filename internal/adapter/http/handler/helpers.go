package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/bookledger/internal/adapter/http/dto"
	"github.com/iho/bookledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to an HTTP response. Accumulated
// validation violations are reported individually so a caller sees every
// problem with a rejected entry at once.
func writeDomainError(w http.ResponseWriter, err error) {
	var violations domain.ValidationErrors
	if errors.As(err, &violations) {
		messages := make([]string, len(violations))
		for i, v := range violations {
			messages[i] = v.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error:      "entry rejected",
			Violations: messages,
		})

		return
	}

	writeError(w, mapDomainError(err), "request failed", err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var missingErr *domain.MissingFieldError
	var argErr *domain.InvalidArgumentError
	var validationErr *domain.ValidationError
	var stateErr *domain.InvalidStateError

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTenantScope):
		return http.StatusNotFound
	case errors.As(err, &missingErr):
		return http.StatusBadRequest
	case errors.As(err, &argErr):
		return http.StatusBadRequest
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stateErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// tenantID extracts the optional tenant scope from the request headers.
func tenantID(r *http.Request) *string {
	tenant := r.Header.Get("X-Tenant-ID")
	if tenant == "" {
		return nil
	}

	return &tenant
}

// actor extracts the acting principal from the request headers.
func actor(r *http.Request) string {
	return r.Header.Get("X-Actor")
}
