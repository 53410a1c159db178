package handlers

import (
	"net/http"

	"github.com/Dosada05/trade-machine/services"
)

type UserHandler struct {
	userService      services.UserService
	dashboardService services.DashboardService
}

func NewUserHandler(us services.UserService, ds services.DashboardService) *UserHandler {
	return &UserHandler{userService: us, dashboardService: ds}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"users": users}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Dashboard godoc
// @Summary The caller's profile and saved trades
// @Tags users
// @Produce json
// @Success 200 {object} services.Dashboard
// @Security BearerAuth
// @Router /api/dashboard [get]
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Get(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, dashboard, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
