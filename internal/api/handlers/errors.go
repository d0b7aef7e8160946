package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sealboxhq/sealbox/internal/core/domain"
	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

type errorResponse struct {
	Message string `json:"message"`
}

// HandleError maps domain and crypto errors onto HTTP statuses in one place.
// Crypto failures stay deliberately vague: the response never says whether
// the key, the associated data, or the ciphertext was wrong.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr validator.ValidationErrors

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation failed: "+verr.Error())

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")

	case errors.Is(err, domain.ErrDuplicateName):
		writeError(w, http.StatusConflict, "name already in use")

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid credentials")

	case errors.Is(err, domain.ErrAccountSuspended):
		writeError(w, http.StatusForbidden, "account suspended")

	case errors.Is(err, crypto.ErrMalformedEnvelope):
		writeError(w, http.StatusBadRequest, "malformed ciphertext")

	case errors.Is(err, crypto.ErrAuthentication):
		writeError(w, http.StatusBadRequest, "decryption failed")

	case errors.Is(err, crypto.ErrInvalidIVEncoding),
		errors.Is(err, crypto.ErrInvalidIVLength):
		writeError(w, http.StatusBadRequest, "invalid iv")

	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
