package handlers

import (
	"net/http"

	"github.com/Dosada05/hackfest/services"
)

type DashboardHandler struct {
	adminService services.AdminService
}

func NewDashboardHandler(s services.AdminService) *DashboardHandler {
	return &DashboardHandler{adminService: s}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats, nil) //nolint:errcheck
}
