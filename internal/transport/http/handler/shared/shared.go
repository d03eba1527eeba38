// Package shared holds helpers used by every handler group.
package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/tokencost/internal/catalog"
	"github.com/mandalnilabja/tokencost/internal/pricing"
	"github.com/mandalnilabja/tokencost/internal/storage"
	"github.com/mandalnilabja/tokencost/internal/tokenizer"
	"github.com/mandalnilabja/tokencost/internal/types"
)

// maxBodyBytes caps request bodies; the largest legitimate body is a token
// estimate sample.
const maxBodyBytes = 4 << 20

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a malformed request error with a custom message.
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	types.WriteError(w, types.NewAPIError(message, types.ErrorTypeInvalidRequest, status))
}

// DecodeJSON reads the request body into v. Any decode failure, including a
// non-numeric token count, is reported as pricing.ErrInvalidUsage.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", pricing.ErrInvalidUsage, err)
	}
	return nil
}

// WriteError maps a domain error onto a status code and error envelope.
// Unrecognised errors are logged and reported without detail.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, errType := classify(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		types.WriteError(w, types.ErrServer("internal server error"))
		return
	}
	types.WriteError(w, types.NewAPIError(err.Error(), errType, status))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, pricing.ErrInvalidUsage):
		return http.StatusBadRequest, types.ErrorTypeInvalidUsage
	case errors.Is(err, pricing.ErrInvalidModel):
		return http.StatusBadRequest, types.ErrorTypeInvalidModel
	case errors.Is(err, tokenizer.ErrEmptySample), errors.Is(err, storage.ErrInvalidInput):
		return http.StatusBadRequest, types.ErrorTypeInvalidRequest
	case errors.Is(err, pricing.ErrNoData):
		return http.StatusUnprocessableEntity, types.ErrorTypeNoData
	case errors.Is(err, catalog.ErrUnknownModel), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, types.ErrorTypeNotFound
	case errors.Is(err, catalog.ErrDuplicateModel), errors.Is(err, catalog.ErrReadOnlyModel),
		errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict, types.ErrorTypeConflict
	case errors.Is(err, storage.ErrStorageClosed):
		return http.StatusServiceUnavailable, types.ErrorTypeUnavailable
	default:
		return http.StatusInternalServerError, types.ErrorTypeServer
	}
}
