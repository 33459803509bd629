package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	models "github.com/promptmandu/prompt-marketplace/internal/models"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
	"github.com/promptmandu/prompt-marketplace/internal/utils/response"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// ListPurchases godoc
// @Summary      List the authenticated user's purchases
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        category  query string false "Filter by category"
// @Param        from      query string false "Purchased on or after (RFC 3339 date)"
// @Param        to        query string false "Purchased on or before (RFC 3339 date)"
// @Param        sort      query string false "asc or desc by purchase date"
// @Param        page      query int    false "Page number"
// @Param        pageSize  query int    false "Items per page"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/purchases [get]
func (h *PurchaseHandler) ListPurchases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			slog.Warn("Unauthorized purchase access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		req := &models.ListPurchasesRequest{
			Category: r.URL.Query().Get("category"),
			SortDesc: r.URL.Query().Get("sort") != "asc",
		}

		if from := r.URL.Query().Get("from"); from != "" {
			t, err := time.Parse("2006-01-02", from)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid from date"))
				return
			}
			req.StartDate = &t
		}

		if to := r.URL.Query().Get("to"); to != "" {
			t, err := time.Parse("2006-01-02", to)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid to date"))
				return
			}
			end := t.Add(24*time.Hour - time.Nanosecond)
			req.EndDate = &end
		}

		if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
			req.Page = page
		}

		if size, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil {
			req.Size = size
		}

		purchases, total, err := h.purchaseService.ListPurchases(r.Context(), claims.UserID, req)
		if err != nil {
			slog.Error("Failed to list purchases",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]interface{}{
			"purchases": purchases,
			"total":     total,
		})
	}
}

// GetPurchase godoc
// @Summary      Get one purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Purchase ID"
// @Success      200 {object} response.APIResponse{data=models.PurchaseResponse}
// @Router       /api/v1/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		purchase, err := h.purchaseService.GetPurchase(r.Context(), claims.UserID, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, purchase)
	}
}

// ListCategories godoc
// @Summary      Categories across the user's purchases
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=[]string}
// @Router       /api/v1/purchases/categories [get]
func (h *PurchaseHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		categories, err := h.purchaseService.ListCategories(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// GetStats godoc
// @Summary      Purchase statistics for the authenticated user
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.PurchaseStats}
// @Router       /api/v1/purchases/stats [get]
func (h *PurchaseHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		stats, err := h.purchaseService.GetStats(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}

// CheckAccess godoc
// @Summary      Check whether the user owns a prompt
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Prompt ID"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/prompts/{id}/access [get]
func (h *PurchaseHandler) CheckAccess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		promptID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		hasAccess, err := h.purchaseService.HasAccess(r.Context(), claims.UserID, promptID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"has_access": hasAccess})
	}
}

// ListLibrary godoc
// @Summary      Prompt IDs the user has active access to
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=[]int64}
// @Router       /api/v1/library [get]
func (h *PurchaseHandler) ListLibrary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		promptIDs, err := h.purchaseService.ListLibrary(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, promptIDs)
	}
}

// RefundPurchase godoc
// @Summary      Refund a completed purchase and revoke access
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Purchase ID"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/purchases/{id}/refund [post]
func (h *PurchaseHandler) RefundPurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.purchaseService.RefundPurchase(r.Context(), claims.UserID, id); err != nil {
			slog.Error("Refund failed",
				slog.String("userId", claims.UserID.String()),
				slog.Int64("purchaseId", id),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Purchase refunded", slog.String("userId", claims.UserID.String()), slog.Int64("purchaseId", id))
		response.Success(w, http.StatusOK, map[string]bool{"refunded": true})
	}
}
