package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/api/handlers"
	"github.com/promptmandu/prompt-marketplace/internal/api/middleware"
	"github.com/promptmandu/prompt-marketplace/internal/cache"
	"github.com/promptmandu/prompt-marketplace/internal/config"
	"github.com/promptmandu/prompt-marketplace/internal/health"
	"github.com/promptmandu/prompt-marketplace/internal/metrics"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	service "github.com/promptmandu/prompt-marketplace/internal/services"
	"github.com/promptmandu/prompt-marketplace/internal/telemetry"
	"github.com/promptmandu/prompt-marketplace/pkg/khalti"
	"github.com/promptmandu/prompt-marketplace/pkg/sendGrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Postgres.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	promptCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	khaltiClient := khalti.NewKhaltiClient(cfg.Khalti.BaseURL, cfg.Khalti.SecretKey)
	sendGridClient := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	promptService := service.NewPromptService(repos.Prompt, promptCache)
	promptHandler := handlers.NewPromptHandler(promptService)
	cartService := service.NewCartService(repos.Cart, repos.Prompt)
	cartHandler := handlers.NewCartHandler(cartService)
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient)
	checkoutService := service.NewCheckoutService(khaltiClient, repos.Settlement, repos.Cart, repos.User, notificationService, &cfg.Khalti)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, &cfg.Khalti)
	purchaseService := service.NewPurchaseService(repos.Purchase)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	addressService := service.NewAddressService(repos.Address)
	addressHandler := handlers.NewAddressHandler(addressService)
	dashboardService := service.NewDashboardService(repos.User, repos.Prompt, repos.Purchase)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, purchaseService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.Postgres.DB,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))

	routerMux.HandleFunc("GET /api/v1/prompts", promptHandler.ListPrompts())
	routerMux.HandleFunc("GET /api/v1/prompts/categories", promptHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/prompts/{id}", promptHandler.GetPrompt())
	routerMux.HandleFunc("POST /api/v1/prompts", authMiddleware.Authenticate(promptHandler.CreatePrompt()))
	routerMux.HandleFunc("PUT /api/v1/prompts/{id}", authMiddleware.Authenticate(promptHandler.UpdatePrompt()))
	routerMux.HandleFunc("DELETE /api/v1/prompts/{id}", authMiddleware.Authenticate(promptHandler.DeletePrompt()))
	routerMux.HandleFunc("GET /api/v1/prompts/{id}/access", authMiddleware.Authenticate(purchaseHandler.CheckAccess()))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("GET /api/v1/cart/summary", authMiddleware.Authenticate(cartHandler.GetSummary()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/refresh", authMiddleware.Authenticate(cartHandler.RefreshPrices()))

	routerMux.HandleFunc("GET /api/v1/get_button", authMiddleware.Authenticate(checkoutHandler.GetButton()))
	routerMux.HandleFunc("GET /api/v1/payment/success", checkoutHandler.PaymentReturn())
	routerMux.HandleFunc("GET /api/v1/checkout/unsettled", authMiddleware.Authenticate(checkoutHandler.ListUnsettled()))

	routerMux.HandleFunc("GET /api/v1/purchases", authMiddleware.Authenticate(purchaseHandler.ListPurchases()))
	routerMux.HandleFunc("GET /api/v1/purchases/categories", authMiddleware.Authenticate(purchaseHandler.ListCategories()))
	routerMux.HandleFunc("GET /api/v1/purchases/stats", authMiddleware.Authenticate(purchaseHandler.GetStats()))
	routerMux.HandleFunc("GET /api/v1/purchases/{id}", authMiddleware.Authenticate(purchaseHandler.GetPurchase()))
	routerMux.HandleFunc("POST /api/v1/purchases/{id}/refund", authMiddleware.Authenticate(purchaseHandler.RefundPurchase()))
	routerMux.HandleFunc("GET /api/v1/library", authMiddleware.Authenticate(purchaseHandler.ListLibrary()))

	routerMux.HandleFunc("POST /api/v1/addresses", authMiddleware.Authenticate(addressHandler.CreateAddress()))
	routerMux.HandleFunc("GET /api/v1/addresses", authMiddleware.Authenticate(addressHandler.ListAddresses()))
	routerMux.HandleFunc("PUT /api/v1/addresses/{id}", authMiddleware.Authenticate(addressHandler.UpdateAddress()))
	routerMux.HandleFunc("DELETE /api/v1/addresses/{id}", authMiddleware.Authenticate(addressHandler.DeleteAddress()))
	routerMux.HandleFunc("POST /api/v1/addresses/{id}/default", authMiddleware.Authenticate(addressHandler.SetDefaultAddress()))

	routerMux.HandleFunc("GET /api/v1/dashboard/stats", authMiddleware.Authenticate(dashboardHandler.GetStats()))
	routerMux.HandleFunc("GET /api/v1/dashboard/purchases", authMiddleware.Authenticate(dashboardHandler.ListPurchases()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "http.server")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

}
