package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/promptmandu/prompt-marketplace/internal/api/middleware"
	"github.com/promptmandu/prompt-marketplace/internal/config"
	"github.com/promptmandu/prompt-marketplace/internal/errors"
	"github.com/promptmandu/prompt-marketplace/internal/metrics"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/promptmandu/prompt-marketplace/pkg/khalti"
	"github.com/google/uuid"
)

// VAT is already included in catalog prices; the 13% portion is carved out of
// the cart total for the gateway's amount_breakdown, never added on top.
const vatRate = 0.13

type CheckoutService interface {
	StartCheckout(ctx context.Context, userID uuid.UUID) (*models.CheckoutButtonResponse, error)
	HandleReturn(ctx context.Context, pidx string) (*models.SettlementResult, error)
	ListUnsettled(ctx context.Context, page, size int) ([]*models.CheckoutSession, int, error)
}

type checkoutService struct {
	gateway        khalti.Client
	settlementRepo repository.SettlementRepository
	cartRepo       repository.CartRepository
	userRepo       repository.UserRepository
	notifications  NotificationService
	cfg            *config.Khalti
}

func NewCheckoutService(gateway khalti.Client, settlementRepo repository.SettlementRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, notifications NotificationService, cfg *config.Khalti) CheckoutService {
	return &checkoutService{
		gateway:        gateway,
		settlementRepo: settlementRepo,
		cartRepo:       cartRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		cfg:            cfg,
	}
}

// StartCheckout quotes the current cart, opens a gateway payment session and
// persists the quote so settlement can later verify nothing moved underneath
// it. The session row is only written after the gateway accepts the initiate
// call, so there are no dangling sessions for failed initiations.
func (s *checkoutService) StartCheckout(ctx context.Context, userID uuid.UUID) (*models.CheckoutButtonResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	lines, err := s.cartRepo.ListLinesForUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(lines) == 0 {
		return nil, errors.EmptyCartError()
	}

	var total float64
	quotedLines := make([]models.QuotedLine, 0, len(lines))
	productDetails := make([]khalti.ProductDetail, 0, len(lines))

	for _, line := range lines {

		// a line whose prompt left the catalog cannot be sold
		if line.Prompt == nil {
			return nil, errors.ProductUnavailableError(fmt.Sprintf("Prompt %d is no longer available", line.PromptID))
		}

		total += line.TotalPrice()

		quotedLines = append(quotedLines, models.QuotedLine{
			LineID:    line.ID,
			PromptID:  line.PromptID,
			Quantity:  line.Quantity,
			UnitPrice: line.PriceAtTime,
		})

		productDetails = append(productDetails, khalti.ProductDetail{
			Identity:   strconv.FormatInt(line.PromptID, 10),
			Name:       line.Prompt.Title,
			TotalPrice: toPaisa(line.TotalPrice()),
			Quantity:   line.Quantity,
			UnitPrice:  toPaisa(line.PriceAtTime),
		})
	}

	amountPaisa := toPaisa(total)
	vatPaisa := int64(math.Round(float64(amountPaisa) * vatRate))
	markPricePaisa := amountPaisa - vatPaisa

	orderReference := fmt.Sprintf("order-%s", uuid.NewString())

	initiateReq := &khalti.InitiateRequest{
		ReturnURL:         s.cfg.ReturnURL,
		WebsiteURL:        s.cfg.WebsiteURL,
		Amount:            amountPaisa,
		PurchaseOrderID:   orderReference,
		PurchaseOrderName: fmt.Sprintf("Prompt purchase (%d items)", len(lines)),
		CustomerInfo: &khalti.CustomerInfo{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		AmountBreakdown: []khalti.AmountBreakdown{
			{Label: "Mark Price", Amount: markPricePaisa},
			{Label: "VAT", Amount: vatPaisa},
		},
		ProductDetails: productDetails,
		MerchantExtra:  userID.String(),
	}

	initiateResp, err := s.gateway.Initiate(ctx, initiateReq)
	if err != nil {
		metrics.CheckoutsFailed.Inc()
		logger.Error("Payment initiation failed", slog.Any("error", err))

		return nil, errors.PaymentInitiationFailedError("Failed to initiate payment").WithError(err)
	}

	session := &models.CheckoutSession{
		UserID:         userID,
		Pidx:           initiateResp.Pidx,
		OrderReference: orderReference,
		QuotedLines:    quotedLines,
		TotalAmount:    float64(amountPaisa) / 100,
		Status:         models.CheckoutStatusInitiated,
	}

	if err := s.settlementRepo.CreateSession(ctx, session); err != nil {
		return nil, errors.DatabaseError("Failed to record checkout session").WithError(err)
	}

	metrics.CheckoutsInitiated.Inc()
	logger.Info("Checkout initiated", slog.String("pidx", session.Pidx), slog.Float64("amount", session.TotalAmount))

	return &models.CheckoutButtonResponse{
		Pidx:        initiateResp.Pidx,
		PaymentURL:  initiateResp.PaymentURL,
		TotalAmount: session.TotalAmount,
		ItemsCount:  len(lines),
	}, nil
}

// HandleReturn settles a gateway callback. The status query parameters the
// gateway appends to the return URL are untrusted and never consulted: the
// payment state is re-fetched from the gateway's lookup endpoint, and only a
// confirmed completed payment settles.
func (s *checkoutService) HandleReturn(ctx context.Context, pidx string) (*models.SettlementResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	if pidx == "" {
		return nil, errors.BadRequestError("Missing pidx")
	}

	lookup, err := s.gateway.Lookup(ctx, pidx)
	if err != nil {
		metrics.CheckoutsFailed.Inc()
		logger.Error("Payment lookup failed", slog.String("pidx", pidx), slog.Any("error", err))

		return nil, errors.PaymentNotCompletedError("Could not verify payment").WithError(err)
	}

	if lookup.Status != khalti.StatusCompleted {
		metrics.CheckoutsFailed.Inc()
		logger.Warn("Payment not completed", slog.String("pidx", pidx), slog.String("status", lookup.Status))

		return nil, errors.PaymentNotCompletedError(fmt.Sprintf("Payment is %s", lookup.Status))
	}

	result, err := s.settlementRepo.Settle(ctx, pidx, lookup.TransactionID)
	if err != nil {
		switch err {
		case repository.ErrSessionNotFound:
			return nil, errors.NotFoundError("Checkout session not found").WithError(err)
		case repository.ErrCartChanged:
			metrics.CheckoutsFailed.Inc()
			logger.Warn("Cart changed between checkout and settlement", slog.String("pidx", pidx))

			return nil, errors.CartChangedError("Cart contents changed since checkout was initiated").WithError(err)
		default:
			return nil, errors.DatabaseError("Failed to settle checkout").WithError(err)
		}
	}

	if result.AlreadySettled {
		logger.Info("Checkout already settled", slog.String("pidx", pidx))

		return result, nil
	}

	metrics.CheckoutsSettled.Inc()
	logger.Info("Checkout settled", slog.String("pidx", pidx), slog.Int("purchases", result.PurchasesCount))

	s.sendReceipt(ctx, pidx, result)

	return result, nil
}

func (s *checkoutService) ListUnsettled(ctx context.Context, page, size int) ([]*models.CheckoutSession, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	sessions, total, err := s.settlementRepo.ListUnsettled(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list unsettled sessions").WithError(err)
	}

	return sessions, total, nil
}

// The receipt email is best effort: the settlement already committed, so a
// notification failure must not bubble up to the callback.
func (s *checkoutService) sendReceipt(ctx context.Context, pidx string, result *models.SettlementResult) {

	logger := middleware.LoggerFromContext(ctx)

	session, err := s.settlementRepo.GetSessionByPidx(ctx, pidx)
	if err != nil {
		logger.Warn("Receipt skipped, session fetch failed", slog.String("pidx", pidx), slog.Any("error", err))
		return
	}

	user, err := s.userRepo.GetUserById(ctx, session.UserID)
	if err != nil {
		logger.Warn("Receipt skipped, user fetch failed", slog.String("pidx", pidx), slog.Any("error", err))
		return
	}

	_, err = s.notifications.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: "Your prompt purchase receipt",
		Content: fmt.Sprintf("Thank you for your purchase, %s! %d prompt(s) for a total of NPR %.2f are now available in your library.", user.Name, result.PurchasesCount, result.TotalAmount),
		Metadata: map[string]string{
			"pidx":            pidx,
			"order_reference": session.OrderReference,
		},
	})
	if err != nil {
		logger.Warn("Receipt email failed", slog.String("pidx", pidx), slog.Any("error", err))
	}
}

// toPaisa converts rupees to the gateway's integer paisa unit.
func toPaisa(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
