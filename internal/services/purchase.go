package service

import (
	"context"
	"database/sql"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/google/uuid"
)

type PurchaseService interface {
	GetPurchase(ctx context.Context, userID uuid.UUID, id int64) (*models.PurchaseResponse, error)
	ListPurchases(ctx context.Context, userID uuid.UUID, req *models.ListPurchasesRequest) ([]models.PurchaseResponse, int, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]string, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*models.PurchaseStats, error)
	HasAccess(ctx context.Context, userID uuid.UUID, promptID int64) (bool, error)
	ListLibrary(ctx context.Context, userID uuid.UUID) ([]int64, error)
	RefundPurchase(ctx context.Context, userID uuid.UUID, id int64) error
	ListAllPurchases(ctx context.Context, page, size int) ([]*models.AdminPurchase, int, error)
}

type purchaseService struct {
	repo repository.PurchaseRepository
}

func NewPurchaseService(repo repository.PurchaseRepository) PurchaseService {
	return &purchaseService{repo: repo}
}

func (s *purchaseService) GetPurchase(ctx context.Context, userID uuid.UUID, id int64) (*models.PurchaseResponse, error) {

	purchase, err := s.repo.GetPurchaseByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFoundError("Purchase not found").WithError(err)
	}

	response := toPurchaseResponse(purchase)

	return &response, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, userID uuid.UUID, req *models.ListPurchasesRequest) ([]models.PurchaseResponse, int, error) {

	if req.Page < 1 {
		req.Page = 1
	}

	if req.Size < 1 || req.Size > 100 {
		req.Size = 20
	}

	purchases, total, err := s.repo.ListPurchases(ctx, userID, req)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch purchases").WithError(err)
	}

	responses := make([]models.PurchaseResponse, 0, len(purchases))
	for _, purchase := range purchases {
		responses = append(responses, toPurchaseResponse(purchase))
	}

	return responses, total, nil
}

func (s *purchaseService) ListCategories(ctx context.Context, userID uuid.UUID) ([]string, error) {

	categories, err := s.repo.ListPurchaseCategories(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch purchase categories").WithError(err)
	}

	return categories, nil
}

func (s *purchaseService) GetStats(ctx context.Context, userID uuid.UUID) (*models.PurchaseStats, error) {

	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch purchase stats").WithError(err)
	}

	recent, _, err := s.repo.ListPurchases(ctx, userID, &models.ListPurchasesRequest{
		SortDesc: true,
		Page:     1,
		Size:     5,
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch recent purchases").WithError(err)
	}

	stats.RecentPurchases = make([]models.PurchaseResponse, 0, len(recent))
	for _, purchase := range recent {
		stats.RecentPurchases = append(stats.RecentPurchases, toPurchaseResponse(purchase))
	}

	return stats, nil
}

func (s *purchaseService) HasAccess(ctx context.Context, userID uuid.UUID, promptID int64) (bool, error) {

	hasAccess, err := s.repo.HasGrant(ctx, userID, promptID)
	if err != nil {
		return false, errors.DatabaseError("Failed to check prompt access").WithError(err)
	}

	return hasAccess, nil
}

func (s *purchaseService) ListLibrary(ctx context.Context, userID uuid.UUID) ([]int64, error) {

	promptIDs, err := s.repo.ListGrantedPromptIDs(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch prompt library").WithError(err)
	}

	return promptIDs, nil
}

// RefundPurchase flips the purchase to refunded and revokes the access grant.
// Purchase history stays; only access goes away.
func (s *purchaseService) RefundPurchase(ctx context.Context, userID uuid.UUID, id int64) error {

	purchase, err := s.repo.GetPurchaseByID(ctx, userID, id)
	if err != nil {
		return errors.NotFoundError("Purchase not found").WithError(err)
	}

	if purchase.Status != models.PurchaseStatusCompleted {
		return errors.BadRequestError("Only completed purchases can be refunded")
	}

	if err := s.repo.UpdateStatus(ctx, id, models.PurchaseStatusRefunded); err != nil {
		return errors.DatabaseError("Failed to refund purchase").WithError(err)
	}

	if err := s.repo.RevokeGrant(ctx, userID, purchase.ID); err != nil && err != sql.ErrNoRows {
		return errors.DatabaseError("Failed to revoke access grant").WithError(err)
	}

	return nil
}

func (s *purchaseService) ListAllPurchases(ctx context.Context, page, size int) ([]*models.AdminPurchase, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	purchases, total, err := s.repo.ListAllPurchases(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch purchases").WithError(err)
	}

	return purchases, total, nil
}

func toPurchaseResponse(purchase *models.Purchase) models.PurchaseResponse {

	response := models.PurchaseResponse{
		ID:           purchase.ID,
		PromptID:     purchase.PromptID,
		Price:        purchase.PriceAtTime,
		Status:       purchase.Status,
		PurchaseDate: purchase.PurchasedAt.Format("2006-01-02"),
		Snapshot:     purchase.PromptSnapshot,
		CreatedAt:    purchase.CreatedAt,
		UpdatedAt:    purchase.UpdatedAt,
	}

	if data := purchase.PromptData(); data != nil {
		response.Title = data.Title
		response.Description = data.Description
		response.Category = data.Category
		response.Image = data.Image
	}

	// surface the live price when it diverges from what was paid
	if purchase.Prompt != nil && purchase.Prompt.Price != purchase.PriceAtTime {
		currentPrice := purchase.Prompt.Price
		response.CurrentPrice = &currentPrice
	}

	return response
}
