package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
	"gasnet/internal/service"
)

// NetworkHandler serves the saved network API
type NetworkHandler struct {
	svc *service.NetworkService
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(svc *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{svc: svc}
}

// ListNetworks returns all saved network summaries
func (h *NetworkHandler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListNetworks(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to list networks", err)
		return
	}
	writeJSON(w, list, http.StatusOK)
}

// GetNetwork returns one saved network. The checksum is sent as ETag and a
// matching If-None-Match answers 304.
func (h *NetworkHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	saved, err := h.svc.GetNetwork(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to get network", err)
		return
	}

	if saved.Checksum != "" {
		etag := `"` + saved.Checksum + `"`
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	writeJSON(w, saved, http.StatusOK)
}

// CreateNetwork stores a new network
func (h *NetworkHandler) CreateNetwork(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.svc.SaveNetwork(r.Context(), &req)
	if err != nil {
		writeServiceError(w, "Failed to save network", err)
		return
	}
	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

// DeleteNetwork removes a saved network
func (h *NetworkHandler) DeleteNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteNetwork(r.Context(), id); err != nil {
		writeServiceError(w, "Failed to delete network", err)
		return
	}
	writeJSON(w, map[string]string{"message": fmt.Sprintf("network %d deleted", id)}, http.StatusOK)
}

// ExportNetwork writes a saved network as JSON or YAML
func (h *NetworkHandler) ExportNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	c, err := codec.ForFormat(format)
	if err != nil {
		writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	// buffer so a missing network still gets a JSON error
	var buf bytes.Buffer
	if err := h.svc.ExportNetwork(r.Context(), id, c.Format(), &buf); err != nil {
		writeServiceError(w, "Failed to export network", err)
		return
	}

	w.Header().Set("Content-Type", codec.ContentType(c))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=network-%d.%s", id, c.Format()))
	w.Write(buf.Bytes())
}

// ImportNetwork stores a JSON or YAML document as a new network
func (h *NetworkHandler) ImportNetwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.svc.ImportNetwork(r.Context(), q.Get("format"), q.Get("name"), data)
	if err != nil {
		writeServiceError(w, "Failed to import network", err)
		return
	}
	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}
