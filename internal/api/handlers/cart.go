package handlers

import (
	"log/slog"
	"net/http"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	models "github.com/promptmandu/prompt-marketplace/internal/models"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
	"github.com/promptmandu/prompt-marketplace/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// AddItem godoc
// @Summary      Add a prompt to the cart
// @Description  Re-adding a carted prompt merges quantities and reprices the line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.AddCartItemRequest true "Prompt and quantity"
// @Success      200 {object} response.APIResponse{data=models.CartLine}
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			slog.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddCartItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		line, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to add item to cart",
				slog.String("userId", claims.UserID.String()),
				slog.Int64("promptId", req.PromptID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Item added to cart",
			slog.String("userId", claims.UserID.String()),
			slog.Int64("promptId", req.PromptID),
			slog.Int("quantity", line.Quantity))
		response.Success(w, http.StatusOK, line)
	}
}

// GetCart godoc
// @Summary      Get the authenticated user's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.CartResponse}
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			slog.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to fetch cart",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// GetSummary godoc
// @Summary      Get the cart roll-up without line detail
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.CartSummary}
// @Router       /api/v1/cart/summary [get]
func (h *CartHandler) GetSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		summary, err := h.cartService.Summary(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to fetch cart summary",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// UpdateQuantity godoc
// @Summary      Change the quantity of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Cart line ID"
// @Param        request body models.UpdateCartQuantityRequest true "New quantity"
// @Success      200 {object} response.APIResponse{data=models.CartLine}
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCartQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		line, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, lineID, &req)
		if err != nil {
			slog.Error("Failed to update cart quantity",
				slog.String("userId", claims.UserID.String()),
				slog.Int64("lineId", lineID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, line)
	}
}

// RemoveItem godoc
// @Summary      Remove one cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Cart line ID"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.RemoveLine(r.Context(), claims.UserID, lineID); err != nil {
			slog.Error("Failed to remove cart line",
				slog.String("userId", claims.UserID.String()),
				slog.Int64("lineId", lineID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"removed": true})
	}
}

// ClearCart godoc
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		removed, err := h.cartService.ClearCart(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to clear cart",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Cart cleared", slog.String("userId", claims.UserID.String()), slog.Int64("removed", removed))
		response.Success(w, http.StatusOK, map[string]int64{"removed": removed})
	}
}

// RefreshPrices godoc
// @Summary      Reprice drifted cart lines to current catalog prices
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.CartResponse}
// @Router       /api/v1/cart/refresh [post]
func (h *CartHandler) RefreshPrices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.RefreshPrices(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to refresh cart prices",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
