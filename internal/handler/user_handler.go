package handler

import (
	"errors"
	"net/http"

	"github.com/formdesk/server/internal/auth"
	"github.com/formdesk/server/internal/models"
	"github.com/formdesk/server/internal/service"
)

type UserHandler struct {
	forms *service.FormService
}

func NewUserHandler(forms *service.FormService) *UserHandler {
	return &UserHandler{forms: forms}
}

// Me returns the complete user document for the authenticated identity.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Profile returns the user's personal information rendered as a
// userProfile form, cloned from the template.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	form, err := h.forms.ProfileForm(r.Context(), user)
	if errors.Is(err, service.ErrTemplateNotFound) {
		writeError(w, http.StatusBadRequest, "the user profile template is missing")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// UpdateProfile writes a submitted profile form back into the user's
// personal information.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Form models.Form `json:"form"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user := auth.GetUser(r.Context())
	if err := h.forms.UpdateProfile(r.Context(), user, req.Form); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}
