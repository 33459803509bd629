package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/promptmandu/prompt-marketplace/internal/utils/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	purchaseService  service.PurchaseService
}

func NewDashboardHandler(dashboardService service.DashboardService, purchaseService service.PurchaseService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, purchaseService: purchaseService}
}

// GetStats godoc
// @Summary      Marketplace overview statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.DashboardStats}
// @Router       /api/v1/dashboard/stats [get]
func (h *DashboardHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := claimsFromRequest(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		stats, err := h.dashboardService.GetStats(r.Context())
		if err != nil {
			slog.Error("Failed to fetch dashboard stats", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}

// ListPurchases godoc
// @Summary      All purchases across the marketplace
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        page     query int false "Page number"
// @Param        pageSize query int false "Items per page"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/dashboard/purchases [get]
func (h *DashboardHandler) ListPurchases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := claimsFromRequest(r); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 20
		}

		purchases, total, err := h.purchaseService.ListAllPurchases(r.Context(), page, pageSize)
		if err != nil {
			slog.Error("Failed to list marketplace purchases", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]interface{}{
			"purchases": purchases,
			"total":     total,
			"page":      page,
			"pageSize":  pageSize,
		})
	}
}
