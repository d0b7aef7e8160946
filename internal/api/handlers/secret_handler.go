package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sealboxhq/sealbox/internal/core/domain"
	"github.com/sealboxhq/sealbox/internal/core/services"
)

type PutSecretRequest struct {
	Value string `json:"value" validate:"required,max=1000000"`
}

type SecretHandler struct {
	Service domain.SecretService
}

func NewSecretHandler(service domain.SecretService) *SecretHandler {
	return &SecretHandler{Service: service}
}

// userID pulls the authenticated principal out of the request context.
func userID(r *http.Request) (uuid.UUID, bool) {
	claims, ok := r.Context().Value(domain.UserContextKey).(*services.Claims)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Put handles PUT /api/v1/secrets/{name}
func (h *SecretHandler) Put(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" || len(name) > 255 {
		writeError(w, http.StatusBadRequest, "invalid secret name")
		return
	}

	var req PutSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	secret, err := h.Service.Put(r.Context(), uid, name, req.Value)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, secret)
}

// Reveal handles GET /api/v1/secrets/{name}
func (h *SecretHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	value, err := h.Service.Reveal(r.Context(), uid, chi.URLParam(r, "name"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"value": value})
}

// List handles GET /api/v1/secrets
func (h *SecretHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	secrets, err := h.Service.List(r.Context(), uid)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if secrets == nil {
		secrets = []*domain.Secret{}
	}

	writeJSON(w, http.StatusOK, secrets)
}

// Delete handles DELETE /api/v1/secrets/{name}
func (h *SecretHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(r.Context(), uid, chi.URLParam(r, "name")); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
