package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"template-widgets/surface"
)

const maxDocumentBytes = 4 << 20

func (h *handler) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.ws.Document()
	if err != nil {
		h.fail(w, "render document", err)
		return
	}
	writeHTML(w, doc)
}

func (h *handler) putDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(body) > maxDocumentBytes {
		http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
		return
	}
	if err := h.ws.SetContent(string(body)); err != nil {
		h.fail(w, "set document", err)
		return
	}
	h.getDocument(w, r)
}

func (h *handler) putCaret(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path []int `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ws.SetCaret(req.Path); err != nil {
		switch {
		case errors.Is(err, surface.ErrInvalidCaret):
			http.Error(w, "invalid caret path", http.StatusBadRequest)
		case errors.Is(err, surface.ErrNotReady):
			http.Error(w, "document not ready", http.StatusConflict)
		default:
			h.fail(w, "set caret", err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) changeWidget(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, "invalid widget number", http.StatusBadRequest)
		return
	}
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.ws.ChangeWidget(n, req.Value); err != nil {
		h.changeFailed(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) changeFailed(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, surface.ErrNoWidget):
		http.Error(w, "widget not found", http.StatusNotFound)
	case errors.Is(err, surface.ErrNoOption):
		http.Error(w, "no such option", http.StatusBadRequest)
	case errors.Is(err, surface.ErrNotReady):
		http.Error(w, "document not ready", http.StatusConflict)
	default:
		h.fail(w, "change widget", err)
	}
}

func (h *handler) insert(w http.ResponseWriter, r *http.Request) {
	// A document that is not ready absorbs the insertion.
	if err := h.ws.InsertAtCaret(); err != nil {
		h.fail(w, "insert widget", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
