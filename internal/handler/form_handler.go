package handler

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/formdesk/server/internal/auth"
	"github.com/formdesk/server/internal/models"
	"github.com/formdesk/server/internal/pdf"
	"github.com/formdesk/server/internal/service"
)

type FormHandler struct {
	svc       *service.FormService
	assembler *pdf.Assembler
}

func NewFormHandler(svc *service.FormService, assembler *pdf.Assembler) *FormHandler {
	return &FormHandler{svc: svc, assembler: assembler}
}

func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if summarized(r) {
		summaries := make([]models.FormSummary, 0, len(user.Forms))
		for _, f := range user.Forms {
			summaries = append(summaries, service.Summarize(f))
		}
		writeJSON(w, http.StatusOK, summaries)
		return
	}
	writeJSON(w, http.StatusOK, user.Forms)
}

func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}
	user := auth.GetUser(r.Context())
	form, err := h.svc.CreateFromTemplate(r.Context(), user, req.Type)
	if errors.Is(err, service.ErrTemplateNotFound) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, form)
}

func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	id, err := formID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrFormNotFound.Error())
		return
	}
	form, err := h.svc.Get(user, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if summarized(r) {
		writeJSON(w, http.StatusOK, service.Summarize(*form))
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *FormHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Form models.Form `json:"form"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user := auth.GetUser(r.Context())
	id, err := formID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrFormNotFound.Error())
		return
	}
	form, err := h.svc.Replace(r.Context(), user, id, req.Form)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *FormHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !models.ValidTag(req.Tag) {
		writeError(w, http.StatusBadRequest, "invalid tag")
		return
	}
	user := auth.GetUser(r.Context())
	id, err := formID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrFormNotFound.Error())
		return
	}
	form, err := h.svc.UpdateTag(r.Context(), user, id, req.Tag)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	id, err := formID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrFormNotFound.Error())
		return
	}
	form, err := h.svc.Delete(r.Context(), user, id)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Pdf streams the filled PDF for a form. The document is assembled in
// memory first; nothing is written to the response until the whole
// merge-and-fill pass has succeeded.
func (h *FormHandler) Pdf(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	id, err := formID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrFormNotFound.Error())
		return
	}
	form, err := h.svc.Get(user, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fieldMap := pdf.FieldMap(form, user.PersonalInformation)

	var buf bytes.Buffer
	if err := h.assembler.Render(form, fieldMap, &buf); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, pdf.ErrNoBasePDF) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func formID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "formID"))
}

func summarized(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("summarized"))
	return v
}
