package handler

import (
	"net/http"

	"linkscout/internal/catalog"
)

type AdminHandler struct {
	index *catalog.Index
}

func NewAdminHandler(index *catalog.Index) *AdminHandler {
	return &AdminHandler{index: index}
}

// HandleInvalidateCatalog drops the cached snapshot; the next chat turn
// refetches from the configured source.
func (h *AdminHandler) HandleInvalidateCatalog(w http.ResponseWriter, _ *http.Request) {
	h.index.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *AdminHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
