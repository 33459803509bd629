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

type AddressHandler struct {
	addressService service.AddressService
	validator      *validator.Validate
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService, validator: validator.New()}
}

// CreateAddress godoc
// @Summary      Add a billing address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreateAddressRequest true "Address details"
// @Success      201 {object} response.APIResponse{data=models.Address}
// @Router       /api/v1/addresses [post]
func (h *AddressHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateAddressRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		address, err := h.addressService.CreateAddress(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to create address",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Address created", slog.String("userId", claims.UserID.String()), slog.Int64("addressId", address.ID))
		response.Success(w, http.StatusCreated, address)
	}
}

// ListAddresses godoc
// @Summary      List the user's billing addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=[]models.Address}
// @Router       /api/v1/addresses [get]
func (h *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		addresses, err := h.addressService.ListAddresses(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

// UpdateAddress godoc
// @Summary      Update a billing address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Address ID"
// @Param        request body models.UpdateAddressRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=models.Address}
// @Router       /api/v1/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress() http.HandlerFunc {
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

		var req models.UpdateAddressRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		address, err := h.addressService.UpdateAddress(r.Context(), claims.UserID, id, &req)
		if err != nil {
			slog.Error("Failed to update address",
				slog.String("userId", claims.UserID.String()),
				slog.Int64("addressId", id),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

// DeleteAddress godoc
// @Summary      Delete a billing address
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Address ID"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress() http.HandlerFunc {
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

		if err := h.addressService.DeleteAddress(r.Context(), claims.UserID, id); err != nil {
			slog.Error("Failed to delete address",
				slog.String("userId", claims.UserID.String()),
				slog.Int64("addressId", id),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// SetDefaultAddress godoc
// @Summary      Mark an address as the default
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Address ID"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/addresses/{id}/default [post]
func (h *AddressHandler) SetDefaultAddress() http.HandlerFunc {
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

		if err := h.addressService.SetDefaultAddress(r.Context(), claims.UserID, id); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"default": true})
	}
}
