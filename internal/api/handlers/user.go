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

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Register godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Registration details"
// @Success      201 {object} response.APIResponse{data=models.User}
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RegisterRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Register(r.Context(), &req)

		if err != nil {
			slog.Error("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("User registered", slog.String("userId", resp.ID.String()))
		response.Success(w, http.StatusCreated, resp)

	}
}

// Login godoc
// @Summary      Authenticate and receive a JWT
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login credentials"
// @Success      200 {object} models.LoginResponse
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)

		if err != nil {
			slog.Warn("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			response.WriteJson(w, status, resp)
			return
		}

		slog.Info("User logged in", slog.String("email", req.Email))
		response.WriteJson(w, http.StatusOK, resp)

	}
}

// Profile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.User}
// @Router       /api/v1/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			slog.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		resp, err := h.userService.GetUserByID(r.Context(), claims.UserID)

		if err != nil {
			slog.Warn("User not found", slog.String("userId", claims.UserID.String()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// UpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=models.User}
// @Router       /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req struct {
			Name  string `json:"name,omitempty" validate:"omitempty,max=255"`
			Phone string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
		}

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Phone)

		if err != nil {
			slog.Error("Profile update failed", slog.String("userId", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Profile updated", slog.String("userId", claims.UserID.String()))
		response.Success(w, http.StatusOK, resp)
	}
}
