package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/promptmandu/prompt-marketplace/internal/config"
	appErrors "github.com/promptmandu/prompt-marketplace/internal/errors"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/promptmandu/prompt-marketplace/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	cfg             *config.Khalti
}

func NewCheckoutHandler(checkoutService service.CheckoutService, cfg *config.Khalti) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, cfg: cfg}
}

// GetButton godoc
// @Summary      Open a payment session for the current cart
// @Description  Quotes the cart, initiates a gateway payment and returns the hosted payment URL.
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.CheckoutButtonResponse}
// @Router       /api/v1/get_button [get]
func (h *CheckoutHandler) GetButton() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			slog.Warn("Unauthorized checkout attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		button, err := h.checkoutService.StartCheckout(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Checkout initiation failed",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, button)
	}
}

// PaymentReturn godoc
// @Summary      Gateway return callback
// @Description  Verifies the payment against the gateway and settles the checkout, then redirects the browser to the frontend. The status parameters the gateway appends are ignored; only the lookup result counts.
// @Tags         checkout
// @Param        pidx query string true "Gateway payment session reference"
// @Success      303
// @Router       /api/v1/payment/success [get]
func (h *CheckoutHandler) PaymentReturn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		pidx := r.URL.Query().Get("pidx")

		result, err := h.checkoutService.HandleReturn(r.Context(), pidx)
		if err != nil {

			code := appErrors.ErrCodeInternal
			if appErr, ok := appErrors.IsAppError(err); ok {
				code = appErr.Code
			}

			slog.Warn("Payment return rejected", slog.String("pidx", pidx), slog.String("code", code))

			// the browser only ever learns an error code, never internals
			failure := fmt.Sprintf("%s?error=%s", h.cfg.FailureRedirectURL, url.QueryEscape(code))
			http.Redirect(w, r, failure, http.StatusSeeOther)
			return
		}

		params := url.Values{}
		params.Set("purchases_count", strconv.Itoa(result.PurchasesCount))
		params.Set("total_amount", fmt.Sprintf("%.2f", result.TotalAmount))
		params.Set("payment_id", result.PaymentID)

		success := fmt.Sprintf("%s?%s", h.cfg.SuccessRedirectURL, params.Encode())
		http.Redirect(w, r, success, http.StatusSeeOther)
	}
}

// ListUnsettled godoc
// @Summary      List checkout sessions still awaiting settlement
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/checkout/unsettled [get]
func (h *CheckoutHandler) ListUnsettled() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := claimsFromRequest(r); !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
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

		sessions, total, err := h.checkoutService.ListUnsettled(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]interface{}{
			"sessions": sessions,
			"total":    total,
			"page":     page,
			"pageSize": pageSize,
		})
	}
}
