package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptmandu/prompt-marketplace/internal/api/handlers"
	appErrors "github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	serviceMocks "github.com/promptmandu/prompt-marketplace/internal/services/mocks"
	"github.com/promptmandu/prompt-marketplace/internal/testutils"
	"github.com/promptmandu/prompt-marketplace/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartHandlerTest(t *testing.T) (*serviceMocks.MockCartService, *handlers.CartHandler) {
	t.Helper()

	mockCartService := serviceMocks.NewMockCartService(t)
	cartHandler := handlers.NewCartHandler(mockCartService)

	return mockCartService, cartHandler
}

func TestAddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		body, err := json.Marshal(models.AddCartItemRequest{PromptID: 42, Quantity: 2})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body), userID, nil)
		recorder := httptest.NewRecorder()

		line := &models.CartLine{ID: 7, UserID: userID, PromptID: 42, Quantity: 2, PriceAtTime: 250.0}

		mockCartService.On("AddItem", mock.Anything, userID, mock.MatchedBy(func(r *models.AddCartItemRequest) bool {
			return r.PromptID == 42 && r.Quantity == 2
		})).Return(line, nil).Once()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		body, _ := json.Marshal(models.AddCartItemRequest{PromptID: 42, Quantity: 2})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCartService.AssertNotCalled(t, "AddItem")
	})

	t.Run("Failure - Invalid Body", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(`{"prompt_id": 0}`), userID, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCartService.AssertNotCalled(t, "AddItem")
	})

	t.Run("Failure - Prompt Unavailable", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		body, _ := json.Marshal(models.AddCartItemRequest{PromptID: 99, Quantity: 1})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", bytes.NewBuffer(body), userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, userID, mock.Anything).
			Return(nil, appErrors.ProductUnavailableError("Prompt is not available")).Once()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeProductUnavailable, resp.Error.Code)
	})
}

func TestGetCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, userID, nil)
		recorder := httptest.NewRecorder()

		cart := &models.CartResponse{
			Items: []models.CartLineResponse{},
			Summary: models.CartSummary{
				ItemsCount:  0,
				TotalItems:  0,
				TotalAmount: 0,
			},
		}

		mockCartService.On("GetCart", mock.Anything, userID).Return(cart, nil).Once()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "Authentication required")
		mockCartService.AssertNotCalled(t, "GetCart")
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("GetCart", mock.Anything, userID).
			Return(nil, appErrors.DatabaseError("Failed to fetch cart")).Once()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestGetSummary(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart/summary", nil, userID, nil)
		recorder := httptest.NewRecorder()

		summary := &models.CartSummary{
			ItemsCount:  2,
			TotalItems:  3,
			TotalAmount: 600.0,
		}

		mockCartService.On("Summary", mock.Anything, userID).Return(summary, nil).Once()

		// Act
		cartHandler.GetSummary()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 3, data["total_items"], 0)
		assert.InDelta(t, 600.0, data["total_amount"], 0)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart/summary", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetSummary()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCartService.AssertNotCalled(t, "Summary")
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart/summary", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("Summary", mock.Anything, userID).
			Return(nil, appErrors.DatabaseError("Failed to fetch cart")).Once()

		// Act
		cartHandler.GetSummary()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestUpdateQuantity(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		body, _ := json.Marshal(models.UpdateCartQuantityRequest{Quantity: 5})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/7", bytes.NewBuffer(body), userID, map[string]string{"id": "7"})
		recorder := httptest.NewRecorder()

		line := &models.CartLine{ID: 7, UserID: userID, PromptID: 42, Quantity: 5, PriceAtTime: 250.0}

		mockCartService.On("UpdateQuantity", mock.Anything, userID, int64(7), mock.MatchedBy(func(r *models.UpdateCartQuantityRequest) bool {
			return r.Quantity == 5
		})).Return(line, nil).Once()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Invalid Line ID", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		body, _ := json.Marshal(models.UpdateCartQuantityRequest{Quantity: 5})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/abc", bytes.NewBuffer(body), userID, map[string]string{"id": "abc"})
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCartService.AssertNotCalled(t, "UpdateQuantity")
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		body, _ := json.Marshal(models.UpdateCartQuantityRequest{Quantity: 5})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/99", bytes.NewBuffer(body), userID, map[string]string{"id": "99"})
		recorder := httptest.NewRecorder()

		mockCartService.On("UpdateQuantity", mock.Anything, userID, int64(99), mock.Anything).
			Return(nil, appErrors.NotFoundError("Cart line not found")).Once()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/7", nil, userID, map[string]string{"id": "7"})
		recorder := httptest.NewRecorder()

		mockCartService.On("RemoveLine", mock.Anything, userID, int64(7)).Return(nil).Once()

		// Act
		cartHandler.RemoveItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Line Not Found", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/99", nil, userID, map[string]string{"id": "99"})
		recorder := httptest.NewRecorder()

		mockCartService.On("RemoveLine", mock.Anything, userID, int64(99)).
			Return(appErrors.NotFoundError("Cart line not found")).Once()

		// Act
		cartHandler.RemoveItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestClearCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("ClearCart", mock.Anything, userID).Return(int64(3), nil).Once()

		// Act
		cartHandler.ClearCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 3, data["removed"], 0)
	})
}

func TestRefreshPrices(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/refresh", nil, userID, nil)
		recorder := httptest.NewRecorder()

		cart := &models.CartResponse{
			Items: []models.CartLineResponse{},
			Summary: models.CartSummary{
				ItemsCount:  1,
				TotalItems:  2,
				TotalAmount: 300.0,
			},
		}

		mockCartService.On("RefreshPrices", mock.Anything, userID).Return(cart, nil).Once()

		// Act
		cartHandler.RefreshPrices()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/refresh", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.RefreshPrices()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCartService.AssertNotCalled(t, "RefreshPrices")
	})
}
