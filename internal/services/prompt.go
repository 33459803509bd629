package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/promptmandu/prompt-marketplace/internal/cache"
	"github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type PromptService interface {
	CreatePrompt(ctx context.Context, req *models.CreatePromptRequest) (*models.Prompt, error)
	GetPromptByID(ctx context.Context, id int64) (*models.Prompt, error)
	UpdatePrompt(ctx context.Context, id int64, req *models.UpdatePromptRequest) (*models.Prompt, error)
	DeletePrompt(ctx context.Context, id int64) error
	ListPrompts(ctx context.Context, category string, popularOnly bool, page, pageSize int) ([]*models.Prompt, int, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type promptService struct {
	repo        repository.PromptRepository
	cache       cache.Cache
	titlePolicy *bluemonday.Policy
	descPolicy  *bluemonday.Policy
}

func NewPromptService(repo repository.PromptRepository, promptCache cache.Cache) PromptService {
	return &promptService{
		repo:        repo,
		cache:       promptCache,
		titlePolicy: bluemonday.StrictPolicy(),
		descPolicy:  bluemonday.UGCPolicy(),
	}
}

func (s *promptService) CreatePrompt(ctx context.Context, req *models.CreatePromptRequest) (*models.Prompt, error) {

	prompt := &models.Prompt{
		Title:       s.titlePolicy.Sanitize(req.Title),
		Description: s.descPolicy.Sanitize(req.Description),
		Rating:      req.Rating,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Popular:     req.Popular,
	}

	err := s.repo.CreatePrompt(ctx, prompt)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create prompt").WithError(err)
	}

	s.invalidateListCaches(ctx)

	return prompt, nil
}

func (s *promptService) GetPromptByID(ctx context.Context, id int64) (*models.Prompt, error) {

	key := cache.Key(cache.PromptKeyPrefix, strconv.FormatInt(id, 10))

	cached := &models.Prompt{}

	found, err := s.cache.Get(ctx, key, cached)
	if err != nil {
		slog.Warn("Prompt cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	prompt, err := s.repo.GetPromptByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Prompt not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, prompt, 0); err != nil {
		slog.Warn("Prompt cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return prompt, nil
}

func (s *promptService) UpdatePrompt(ctx context.Context, id int64, req *models.UpdatePromptRequest) (*models.Prompt, error) {

	prompt, err := s.repo.GetPromptByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Prompt not found").WithError(err)
	}

	if req.Title != nil {
		prompt.Title = s.titlePolicy.Sanitize(*req.Title)
	}
	if req.Description != nil {
		prompt.Description = s.descPolicy.Sanitize(*req.Description)
	}
	if req.Rating != nil {
		prompt.Rating = *req.Rating
	}
	if req.Price != nil {
		prompt.Price = *req.Price
	}
	if req.Image != nil {
		prompt.Image = *req.Image
	}
	if req.Category != nil {
		prompt.Category = *req.Category
	}
	if req.Popular != nil {
		prompt.Popular = *req.Popular
	}

	err = s.repo.UpdatePrompt(ctx, prompt)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update prompt").WithError(err)
	}

	s.invalidatePrompt(ctx, id)

	return prompt, err
}

func (s *promptService) DeletePrompt(ctx context.Context, id int64) error {

	// Cart lines and purchases keep their snapshots; only the live catalog
	// row goes away.
	err := s.repo.DeletePrompt(ctx, id)
	if err != nil {
		return errors.NotFoundError("Prompt not found").WithError(err)
	}

	s.invalidatePrompt(ctx, id)

	return nil
}

func (s *promptService) ListPrompts(ctx context.Context, category string, popularOnly bool, page, pageSize int) ([]*models.Prompt, int, error) {

	prompts, total, err := s.repo.ListPrompts(ctx, category, popularOnly, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch prompts").WithError(err)
	}

	return prompts, total, nil
}

func (s *promptService) ListCategories(ctx context.Context) ([]string, error) {

	key := cache.Key(cache.CategoryKeyPrefix, "all")

	var cached []string

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Category cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	if err := s.cache.Set(ctx, key, categories, 0); err != nil {
		slog.Warn("Category cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return categories, nil
}

func (s *promptService) invalidatePrompt(ctx context.Context, id int64) {
	key := cache.Key(cache.PromptKeyPrefix, strconv.FormatInt(id, 10))

	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Prompt cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}

	s.invalidateListCaches(ctx)
}

func (s *promptService) invalidateListCaches(ctx context.Context) {
	key := cache.Key(cache.CategoryKeyPrefix, "all")

	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Category cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}
