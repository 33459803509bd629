package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	models "github.com/promptmandu/prompt-marketplace/internal/models"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/promptmandu/prompt-marketplace/internal/utils"
	"github.com/promptmandu/prompt-marketplace/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PromptHandler struct {
	promptService service.PromptService
	validator     *validator.Validate
}

func NewPromptHandler(promptService service.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService, validator: validator.New()}
}

// CreatePrompt godoc
// @Summary      Add a prompt to the catalog
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreatePromptRequest true "Prompt details"
// @Success      201 {object} response.APIResponse{data=models.Prompt}
// @Router       /api/v1/prompts [post]
func (h *PromptHandler) CreatePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreatePromptRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		prompt, err := h.promptService.CreatePrompt(r.Context(), &req)
		if err != nil {
			slog.Error("Failed to create prompt", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Prompt created", slog.Int64("promptId", prompt.ID))
		response.Success(w, http.StatusCreated, prompt)
	}
}

// GetPrompt godoc
// @Summary      Get one catalog prompt
// @Tags         prompts
// @Produce      json
// @Param        id path int true "Prompt ID"
// @Success      200 {object} response.APIResponse{data=models.Prompt}
// @Router       /api/v1/prompts/{id} [get]
func (h *PromptHandler) GetPrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		prompt, err := h.promptService.GetPromptByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, prompt)
	}
}

// UpdatePrompt godoc
// @Summary      Update a catalog prompt
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Prompt ID"
// @Param        request body models.UpdatePromptRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=models.Prompt}
// @Router       /api/v1/prompts/{id} [put]
func (h *PromptHandler) UpdatePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdatePromptRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		prompt, err := h.promptService.UpdatePrompt(r.Context(), id, &req)
		if err != nil {
			slog.Error("Failed to update prompt", slog.Int64("promptId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Prompt updated", slog.Int64("promptId", id))
		response.Success(w, http.StatusOK, prompt)
	}
}

// DeletePrompt godoc
// @Summary      Remove a prompt from the catalog
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Prompt ID"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/prompts/{id} [delete]
func (h *PromptHandler) DeletePrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.promptService.DeletePrompt(r.Context(), id); err != nil {
			slog.Error("Failed to delete prompt", slog.Int64("promptId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Prompt deleted", slog.Int64("promptId", id))
		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// ListPrompts godoc
// @Summary      Browse the prompt catalog
// @Tags         prompts
// @Produce      json
// @Param        category query string false "Filter by category"
// @Param        popular  query bool   false "Only popular prompts"
// @Param        page     query int    false "Page number"
// @Param        pageSize query int    false "Items per page"
// @Success      200 {object} response.APIResponse
// @Router       /api/v1/prompts [get]
func (h *PromptHandler) ListPrompts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 20
		}

		category := r.URL.Query().Get("category")
		popularOnly := r.URL.Query().Get("popular") == "true"

		prompts, total, err := h.promptService.ListPrompts(r.Context(), category, popularOnly, page, pageSize)
		if err != nil {
			slog.Error("Failed to list prompts", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]interface{}{
			"prompts":  prompts,
			"total":    total,
			"page":     page,
			"pageSize": pageSize,
		})
	}
}

// ListCategories godoc
// @Summary      List catalog categories
// @Tags         prompts
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]string}
// @Router       /api/v1/prompts/categories [get]
func (h *PromptHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.promptService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}
