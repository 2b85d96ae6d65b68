package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *handler) getTemplates(w http.ResponseWriter, r *http.Request) {
	h.respondTemplates(w, http.StatusOK)
}

func (h *handler) addTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.Add(); err != nil {
		h.fail(w, "add template", err)
		return
	}
	h.respondTemplates(w, http.StatusCreated)
}

func (h *handler) removeTemplate(w http.ResponseWriter, r *http.Request) {
	// Removing from an empty list is a no-op, not an error.
	if err := h.ws.Remove(); err != nil {
		h.fail(w, "remove template", err)
		return
	}
	h.respondTemplates(w, http.StatusOK)
}

func (h *handler) editTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ws.Edit(*req.Text); err != nil {
		h.fail(w, "edit template", err)
		return
	}
	h.respondTemplates(w, http.StatusOK)
}

func (h *handler) selectTemplate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid template index", http.StatusBadRequest)
		return
	}
	if err := h.ws.Select(index); err != nil {
		h.fail(w, "select template", err)
		return
	}
	h.respondTemplates(w, http.StatusOK)
}

func (h *handler) getSidebar(w http.ResponseWriter, r *http.Request) {
	out, err := h.ws.Sidebar()
	if err != nil {
		h.fail(w, "render sidebar", err)
		return
	}
	writeHTML(w, out)
}

func (h *handler) respondTemplates(w http.ResponseWriter, status int) {
	snap, err := h.ws.Templates()
	if err != nil {
		h.fail(w, "read templates", err)
		return
	}
	writeJSON(w, status, snap)
}
