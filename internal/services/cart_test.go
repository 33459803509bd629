package service_test

import (
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repoMocks "github.com/promptmandu/prompt-marketplace/internal/repositories/mocks"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddItem(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	prompt := &models.Prompt{
		ID:       42,
		Title:    "SEO Blog Outline",
		Price:    250.0,
		Category: "marketing",
	}

	addReq := &models.AddCartItemRequest{PromptID: 42, Quantity: 2}

	t.Run("Success - New Line", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockPromptRepo.On("GetPromptByID", ctx, int64(42)).Return(prompt, nil).Once()
		mockCartRepo.On("GetLineByUserAndPrompt", ctx, userID, int64(42)).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("CreateLine", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.UserID == userID &&
				line.PromptID == 42 &&
				line.Quantity == 2 &&
				line.PriceAtTime == 250.0 &&
				line.PromptSnapshot != nil &&
				line.PromptSnapshot.Title == "SEO Blog Outline"
		})).Return(nil).Once()

		// Act
		line, err := cartService.AddItem(ctx, userID, addReq)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, line)
		assert.Equal(t, 2, line.Quantity)
		assert.Equal(t, 250.0, line.PriceAtTime)
		assert.Equal(t, prompt, line.Prompt)
	})

	t.Run("Success - Quantity Defaults To One", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockPromptRepo.On("GetPromptByID", ctx, int64(42)).Return(prompt, nil).Once()
		mockCartRepo.On("GetLineByUserAndPrompt", ctx, userID, int64(42)).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("CreateLine", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.Quantity == models.MinCartQuantity
		})).Return(nil).Once()

		// Act
		line, err := cartService.AddItem(ctx, userID, &models.AddCartItemRequest{PromptID: 42})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, line.Quantity)
	})

	t.Run("Success - Merge Into Existing Line Reprices", func(t *testing.T) {
		// Arrange: the existing line was added at an older price; the merge
		// must add the quantities and refresh PriceAtTime to the live price.
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		existing := &models.CartLine{
			ID:          7,
			UserID:      userID,
			PromptID:    42,
			Quantity:    3,
			PriceAtTime: 200.0,
		}

		mockPromptRepo.On("GetPromptByID", ctx, int64(42)).Return(prompt, nil).Once()
		mockCartRepo.On("GetLineByUserAndPrompt", ctx, userID, int64(42)).Return(existing, nil).Once()
		mockCartRepo.On("UpdateLine", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.ID == 7 &&
				line.Quantity == 5 &&
				line.PriceAtTime == 250.0 &&
				line.PromptSnapshot != nil
		})).Return(nil).Once()

		// Act
		line, err := cartService.AddItem(ctx, userID, addReq)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, line)
		assert.Equal(t, 5, line.Quantity)
		assert.Equal(t, 250.0, line.PriceAtTime)
	})

	t.Run("Failure - Merge Exceeds Quantity Bound", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		existing := &models.CartLine{
			ID:          7,
			UserID:      userID,
			PromptID:    42,
			Quantity:    9,
			PriceAtTime: 250.0,
		}

		mockPromptRepo.On("GetPromptByID", ctx, int64(42)).Return(prompt, nil).Once()
		mockCartRepo.On("GetLineByUserAndPrompt", ctx, userID, int64(42)).Return(existing, nil).Once()

		// Act
		line, err := cartService.AddItem(ctx, userID, addReq)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, line)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockCartRepo.AssertNotCalled(t, "UpdateLine", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Prompt Not In Catalog", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockPromptRepo.On("GetPromptByID", ctx, int64(42)).Return(nil, sql.ErrNoRows).Once()

		// Act
		line, err := cartService.AddItem(ctx, userID, addReq)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, line)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeProductUnavailable, appErr.Code)
		mockCartRepo.AssertNotCalled(t, "CreateLine", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Database Error On Create", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		dbError := errors.New("database connection failed")
		mockPromptRepo.On("GetPromptByID", ctx, int64(42)).Return(prompt, nil).Once()
		mockCartRepo.On("GetLineByUserAndPrompt", ctx, userID, int64(42)).Return(nil, sql.ErrNoRows).Once()
		mockCartRepo.On("CreateLine", ctx, mock.AnythingOfType("*models.CartLine")).Return(dbError).Once()

		// Act
		line, err := cartService.AddItem(ctx, userID, addReq)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, line)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbError)
	})
}

func TestGetCart(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Summary Rolls Up Lines", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		lines := []*models.CartLine{
			{ID: 1, UserID: userID, PromptID: 42, Quantity: 2, PriceAtTime: 250.0, Prompt: &models.Prompt{ID: 42, Price: 250.0}},
			{ID: 2, UserID: userID, PromptID: 43, Quantity: 1, PriceAtTime: 100.0, Prompt: &models.Prompt{ID: 43, Price: 150.0}},
		}

		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(lines, nil).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 2, cart.Summary.ItemsCount)
		assert.Equal(t, 3, cart.Summary.TotalItems)
		assert.Equal(t, 600.0, cart.Summary.TotalAmount)
		assert.True(t, cart.Summary.HasPriceChanges)
		assert.False(t, cart.Items[0].PriceChanged)
		assert.True(t, cart.Items[1].PriceChanged)
	})

	t.Run("Success - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(nil, nil).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Empty(t, cart.Items)
		assert.Equal(t, 0.0, cart.Summary.TotalAmount)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		dbError := errors.New("database connection failed")
		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(nil, dbError).Once()

		// Act
		cart, err := cartService.GetCart(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, dbError)
	})
}

func TestSummary(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		lines := []*models.CartLine{
			{ID: 1, UserID: userID, PromptID: 42, Quantity: 2, PriceAtTime: 250.0, Prompt: &models.Prompt{ID: 42, Price: 250.0}},
			{ID: 2, UserID: userID, PromptID: 43, Quantity: 1, PriceAtTime: 100.0, Prompt: &models.Prompt{ID: 43, Price: 150.0}},
		}

		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(lines, nil).Once()

		// Act
		summary, err := cartService.Summary(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, summary)
		assert.Equal(t, 2, summary.ItemsCount)
		assert.Equal(t, 3, summary.TotalItems)
		assert.Equal(t, 600.0, summary.TotalAmount)
		assert.True(t, summary.HasPriceChanges)
	})

	t.Run("Success - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(nil, nil).Once()

		// Act
		summary, err := cartService.Summary(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, summary)
		assert.Equal(t, 0, summary.TotalItems)
		assert.Equal(t, 0.0, summary.TotalAmount)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		dbError := errors.New("database connection failed")
		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(nil, dbError).Once()

		// Act
		summary, err := cartService.Summary(ctx, userID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, dbError)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Quantity Change Never Reprices", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		existing := &models.CartLine{ID: 7, UserID: userID, PromptID: 42, Quantity: 2, PriceAtTime: 200.0}

		mockCartRepo.On("GetLineByID", ctx, int64(7)).Return(existing, nil).Once()
		mockCartRepo.On("UpdateLine", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.Quantity == 5 && line.PriceAtTime == 200.0
		})).Return(nil).Once()

		// Act
		line, err := cartService.UpdateQuantity(ctx, userID, 7, &models.UpdateCartQuantityRequest{Quantity: 5})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
		assert.Equal(t, 200.0, line.PriceAtTime)
	})

	t.Run("Failure - Line Belongs To Another User", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		existing := &models.CartLine{ID: 7, UserID: uuid.New(), PromptID: 42, Quantity: 2, PriceAtTime: 200.0}

		mockCartRepo.On("GetLineByID", ctx, int64(7)).Return(existing, nil).Once()

		// Act
		line, err := cartService.UpdateQuantity(ctx, userID, 7, &models.UpdateCartQuantityRequest{Quantity: 5})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, line)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockCartRepo.AssertNotCalled(t, "UpdateLine", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockCartRepo.On("GetLineByID", ctx, int64(7)).Return(nil, sql.ErrNoRows).Once()

		// Act
		line, err := cartService.UpdateQuantity(ctx, userID, 7, &models.UpdateCartQuantityRequest{Quantity: 5})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, line)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestRemoveLine(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockCartRepo.On("DeleteLine", ctx, userID, int64(7)).Return(nil).Once()

		// Act
		err := cartService.RemoveLine(ctx, userID, 7)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		mockCartRepo.On("DeleteLine", ctx, userID, int64(7)).Return(sql.ErrNoRows).Once()

		// Act
		err := cartService.RemoveLine(ctx, userID, 7)

		// Assert
		assert.Error(t, err)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestRefreshPrices(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()

	t.Run("Success - Only Drifted Lines Are Repriced", func(t *testing.T) {
		// Arrange
		mockCartRepo := repoMocks.NewMockCartRepository(t)
		mockPromptRepo := repoMocks.NewMockPromptRepository(t)
		cartService := service.NewCartService(mockCartRepo, mockPromptRepo)

		lines := []*models.CartLine{
			{ID: 1, UserID: userID, PromptID: 42, Quantity: 1, PriceAtTime: 250.0, Prompt: &models.Prompt{ID: 42, Price: 250.0}},
			{ID: 2, UserID: userID, PromptID: 43, Quantity: 2, PriceAtTime: 100.0, Prompt: &models.Prompt{ID: 43, Price: 150.0}},
			{ID: 3, UserID: userID, PromptID: 44, Quantity: 1, PriceAtTime: 50.0, Prompt: nil},
		}

		mockCartRepo.On("ListLinesForUser", ctx, userID).Return(lines, nil).Once()
		mockCartRepo.On("UpdateLine", ctx, mock.MatchedBy(func(line *models.CartLine) bool {
			return line.ID == 2 && line.PriceAtTime == 150.0
		})).Return(nil).Once()

		// Act
		cart, err := cartService.RefreshPrices(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.False(t, cart.Summary.HasPriceChanges)
		assert.Equal(t, 250.0+300.0+50.0, cart.Summary.TotalAmount)
	})
}
