package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartLine, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	Summary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, lineID int64, req *models.UpdateCartQuantityRequest) (*models.CartLine, error)
	RemoveLine(ctx context.Context, userID uuid.UUID, lineID int64) error
	ClearCart(ctx context.Context, userID uuid.UUID) (int64, error)
	RefreshPrices(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
}

type cartService struct {
	repo       repository.CartRepository
	promptRepo repository.PromptRepository
}

func NewCartService(repo repository.CartRepository, promptRepo repository.PromptRepository) CartService {
	return &cartService{repo: repo, promptRepo: promptRepo}
}

// AddItem merges into the existing line when the prompt is already carted:
// quantities add up, and the line reprices to the live catalog price. A merge
// that would exceed the per-line quantity bound is rejected outright.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartLine, error) {

	quantity := req.Quantity
	if quantity == 0 {
		quantity = models.MinCartQuantity
	}

	prompt, err := s.promptRepo.GetPromptByID(ctx, req.PromptID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ProductUnavailableError("Prompt is not available")
		}
		return nil, errors.DatabaseError("Failed to fetch prompt").WithError(err)
	}

	snapshot := snapshotOf(prompt)

	line, err := s.repo.GetLineByUserAndPrompt(ctx, userID, req.PromptID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.DatabaseError("Failed to fetch cart line").WithError(err)
	}

	if line != nil {

		merged := line.Quantity + quantity
		if merged > models.MaxCartQuantity {
			return nil, errors.ValidationError(fmt.Sprintf("Quantity cannot exceed %d per prompt", models.MaxCartQuantity))
		}

		line.Quantity = merged
		line.PriceAtTime = prompt.Price
		line.PromptSnapshot = snapshot

		if err := s.repo.UpdateLine(ctx, line); err != nil {
			return nil, errors.DatabaseError("Failed to update cart line").WithError(err)
		}

		line.Prompt = prompt

		return line, nil
	}

	line = &models.CartLine{
		UserID:         userID,
		PromptID:       req.PromptID,
		Quantity:       quantity,
		PriceAtTime:    prompt.Price,
		PromptSnapshot: snapshot,
	}

	if err := s.repo.CreateLine(ctx, line); err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	line.Prompt = prompt

	return line, nil
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	lines, err := s.repo.ListLinesForUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return buildCartResponse(lines), nil
}

// Summary is the lightweight pre-checkout roll-up, without the line detail.
func (s *cartService) Summary(ctx context.Context, userID uuid.UUID) (*models.CartSummary, error) {

	lines, err := s.repo.ListLinesForUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	summary := buildCartResponse(lines).Summary

	return &summary, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, lineID int64, req *models.UpdateCartQuantityRequest) (*models.CartLine, error) {

	line, err := s.repo.GetLineByID(ctx, lineID)
	if err != nil {
		return nil, errors.NotFoundError("Cart line not found").WithError(err)
	}

	if line.UserID != userID {
		return nil, errors.NotFoundError("Cart line not found")
	}

	// quantity changes alone never reprice the line
	line.Quantity = req.Quantity

	if err := s.repo.UpdateLine(ctx, line); err != nil {
		return nil, errors.DatabaseError("Failed to update cart line").WithError(err)
	}

	return line, nil
}

func (s *cartService) RemoveLine(ctx context.Context, userID uuid.UUID, lineID int64) error {

	if err := s.repo.DeleteLine(ctx, userID, lineID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Cart line not found")
		}
		return errors.DatabaseError("Failed to remove cart line").WithError(err)
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (int64, error) {

	removed, err := s.repo.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return removed, nil
}

// RefreshPrices reprices every line that drifted from the live catalog price.
// This is the only path besides a merge that touches PriceAtTime.
func (s *cartService) RefreshPrices(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {

	lines, err := s.repo.ListLinesForUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	for _, line := range lines {
		if !line.HasPriceChanged() {
			continue
		}

		line.PriceAtTime = line.Prompt.Price
		line.PromptSnapshot = snapshotOf(line.Prompt)

		if err := s.repo.UpdateLine(ctx, line); err != nil {
			return nil, errors.DatabaseError("Failed to refresh cart prices").WithError(err)
		}
	}

	return buildCartResponse(lines), nil
}

func snapshotOf(prompt *models.Prompt) *models.PromptSnapshot {
	now := time.Now()

	return &models.PromptSnapshot{
		Title:        prompt.Title,
		Description:  prompt.Description,
		Category:     prompt.Category,
		Image:        prompt.Image,
		Price:        prompt.Price,
		Rating:       prompt.Rating,
		Popular:      prompt.Popular,
		SnapshotDate: &now,
	}
}

func buildCartResponse(lines []*models.CartLine) *models.CartResponse {

	response := &models.CartResponse{
		Items: make([]models.CartLineResponse, 0, len(lines)),
	}

	for _, line := range lines {

		priceChanged := line.HasPriceChanged()

		response.Items = append(response.Items, models.CartLineResponse{
			ID:           line.ID,
			Quantity:     line.Quantity,
			PriceAtTime:  line.PriceAtTime,
			TotalPrice:   line.TotalPrice(),
			AddedAt:      line.AddedAt,
			PriceChanged: priceChanged,
			Prompt:       line.PromptData(),
		})

		response.Summary.ItemsCount++
		response.Summary.TotalItems += line.Quantity
		response.Summary.TotalAmount += line.TotalPrice()

		if priceChanged {
			response.Summary.HasPriceChanges = true
		}
	}

	return response
}
