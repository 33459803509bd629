package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/promptmandu/prompt-marketplace/internal/api/handlers"
	"github.com/promptmandu/prompt-marketplace/internal/config"
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

func setupCheckoutHandlerTest(t *testing.T) (*serviceMocks.MockCheckoutService, *handlers.CheckoutHandler) {
	t.Helper()

	mockCheckoutService := serviceMocks.NewMockCheckoutService(t)
	cfg := &config.Khalti{
		SuccessRedirectURL: "https://promptmandu.com/payment/success",
		FailureRedirectURL: "https://promptmandu.com/payment/failure",
	}
	checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService, cfg)

	return mockCheckoutService, checkoutHandler
}

func TestGetButton(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/get_button", nil, userID, nil)
		recorder := httptest.NewRecorder()

		button := &models.CheckoutButtonResponse{
			Pidx:        "pidx-123",
			PaymentURL:  "https://test-pay.khalti.com/?pidx=pidx-123",
			TotalAmount: 678.0,
			ItemsCount:  2,
		}

		mockCheckoutService.On("StartCheckout", mock.Anything, userID).Return(button, nil).Once()

		// Act
		checkoutHandler.GetButton()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "pidx-123", data["pidx"])
		assert.Equal(t, "https://test-pay.khalti.com/?pidx=pidx-123", data["payment_url"])
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/get_button", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.GetButton()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCheckoutService.AssertNotCalled(t, "StartCheckout")
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/get_button", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("StartCheckout", mock.Anything, userID).
			Return(nil, appErrors.EmptyCartError()).Once()

		// Act
		checkoutHandler.GetButton()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)
	})

	t.Run("Failure - Gateway Down", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/get_button", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("StartCheckout", mock.Anything, userID).
			Return(nil, appErrors.PaymentInitiationFailedError("Failed to initiate payment")).Once()

		// Act
		checkoutHandler.GetButton()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}

func TestPaymentReturn(t *testing.T) {
	t.Run("Success - Redirects With Receipt Params", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment/success?pidx=pidx-123", nil, nil)
		recorder := httptest.NewRecorder()

		result := &models.SettlementResult{
			PurchasesCount: 3,
			TotalAmount:    678.0,
			PaymentID:      "txn-789",
		}

		mockCheckoutService.On("HandleReturn", mock.Anything, "pidx-123").Return(result, nil).Once()

		// Act
		checkoutHandler.PaymentReturn()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusSeeOther, recorder.Code)

		location, err := url.Parse(recorder.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "promptmandu.com", location.Host)
		assert.Equal(t, "/payment/success", location.Path)

		params := location.Query()
		assert.Equal(t, "3", params.Get("purchases_count"))
		assert.Equal(t, "678.00", params.Get("total_amount"))
		assert.Equal(t, "txn-789", params.Get("payment_id"))
	})

	t.Run("Failure - Payment Not Completed", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment/success?pidx=pidx-123", nil, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("HandleReturn", mock.Anything, "pidx-123").
			Return(nil, appErrors.PaymentNotCompletedError("Payment status is Pending")).Once()

		// Act
		checkoutHandler.PaymentReturn()(recorder, req)

		// Assert: the browser gets an error code on the failure URL, nothing more.
		assert.Equal(t, http.StatusSeeOther, recorder.Code)

		location, err := url.Parse(recorder.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/payment/failure", location.Path)
		assert.Equal(t, appErrors.ErrCodePaymentNotCompleted, location.Query().Get("error"))
	})

	t.Run("Failure - Cart Changed Since Quote", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment/success?pidx=pidx-123", nil, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("HandleReturn", mock.Anything, "pidx-123").
			Return(nil, appErrors.CartChangedError("Cart contents changed during payment")).Once()

		// Act
		checkoutHandler.PaymentReturn()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusSeeOther, recorder.Code)

		location, err := url.Parse(recorder.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, appErrors.ErrCodeCartChanged, location.Query().Get("error"))
	})

	t.Run("Failure - Unexpected Error Maps To Internal Code", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment/success?pidx=pidx-123", nil, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("HandleReturn", mock.Anything, "pidx-123").
			Return(nil, assert.AnError).Once()

		// Act
		checkoutHandler.PaymentReturn()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusSeeOther, recorder.Code)

		location, err := url.Parse(recorder.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/payment/failure", location.Path)
		assert.Equal(t, appErrors.ErrCodeInternal, location.Query().Get("error"))
	})

	t.Run("Failure - Missing Pidx", func(t *testing.T) {
		// Arrange: the service rejects an empty reference; the handler just relays it.
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/payment/success", nil, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("HandleReturn", mock.Anything, "").
			Return(nil, appErrors.BadRequestError("Missing payment reference")).Once()

		// Act
		checkoutHandler.PaymentReturn()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusSeeOther, recorder.Code)

		location, err := url.Parse(recorder.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, appErrors.ErrCodeBadRequest, location.Query().Get("error"))
	})
}

func TestListUnsettled(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Default Paging", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/checkout/unsettled", nil, userID, nil)
		recorder := httptest.NewRecorder()

		sessions := []*models.CheckoutSession{
			{ID: 1, Pidx: "pidx-123", Status: models.CheckoutStatusInitiated},
		}

		mockCheckoutService.On("ListUnsettled", mock.Anything, 1, 20).Return(sessions, 1, nil).Once()

		// Act
		checkoutHandler.ListUnsettled()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 1, data["total"], 0)
		assert.InDelta(t, 1, data["page"], 0)
		assert.InDelta(t, 20, data["pageSize"], 0)
	})

	t.Run("Success - Explicit Paging", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/checkout/unsettled?page=2&pageSize=5", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockCheckoutService.On("ListUnsettled", mock.Anything, 2, 5).Return([]*models.CheckoutSession{}, 0, nil).Once()

		// Act
		checkoutHandler.ListUnsettled()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		mockCheckoutService, checkoutHandler := setupCheckoutHandlerTest(t)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/checkout/unsettled", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.ListUnsettled()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockCheckoutService.AssertNotCalled(t, "ListUnsettled")
	})
}
