package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"template-widgets/workspace"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// fail maps errors that are not specific to one endpoint.
func (h *handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, workspace.ErrClosed) {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	h.logger.Error(op, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
