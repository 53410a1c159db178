package handlers

import (
	"net/http"

	"github.com/Dosada05/trade-machine/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(as services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

// Migrate godoc
// @Summary Apply pending database migrations
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} db.MigrationResult
// @Router /api/admin/migrate [post]
func (h *AdminHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.Migrate(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Seed godoc
// @Summary Load reference teams, picks and the sample account
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} services.SeedResult
// @Router /api/admin/seed [post]
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.Seed(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
