package service

import (
	"context"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	userRepo     repository.UserRepository
	promptRepo   repository.PromptRepository
	purchaseRepo repository.PurchaseRepository
}

func NewDashboardService(userRepo repository.UserRepository, promptRepo repository.PromptRepository, purchaseRepo repository.PurchaseRepository) DashboardService {
	return &dashboardService{
		userRepo:     userRepo,
		promptRepo:   promptRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {

	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count users").WithError(err)
	}

	activePrompts, err := s.promptRepo.CountPrompts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count prompts").WithError(err)
	}

	totalRevenue, err := s.purchaseRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to compute revenue").WithError(err)
	}

	purchasesCount, err := s.purchaseRepo.CountCompleted(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count purchases").WithError(err)
	}

	return &models.DashboardStats{
		TotalUsers:     totalUsers,
		ActivePrompts:  activePrompts,
		TotalRevenue:   totalRevenue,
		PurchasesCount: purchasesCount,
	}, nil
}
