package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minhphamdev/banle-api/internal/application/service"
	"github.com/minhphamdev/banle-api/internal/config"
	"github.com/minhphamdev/banle-api/internal/infrastructure/database"
	"github.com/minhphamdev/banle-api/internal/infrastructure/repository"
	"github.com/minhphamdev/banle-api/internal/presentation/http/handler"
	"github.com/minhphamdev/banle-api/internal/presentation/http/routes"
	"github.com/minhphamdev/banle-api/pkg/bankqr"
	"github.com/minhphamdev/banle-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Bank code resolver for transfer QR codes; the static table covers a
	// failed refresh
	qrResolver := bankqr.NewResolver()
	refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := qrResolver.Refresh(refreshCtx); err != nil {
		log.Printf("Warning: Failed to refresh bank list: %v", err)
	}
	cancel()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	shopRepo := repository.NewShopRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	cartStore := repository.NewRedisCartStore(redisClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	promotionService := service.NewPromotionService(promotionRepo)
	voucherService := service.NewVoucherService(voucherRepo)
	customerService := service.NewCustomerService(customerRepo)
	debtService := service.NewDebtService(customerRepo, invoiceRepo)
	cartService := service.NewCartService(cartStore, productRepo, promotionRepo, redemptionRepo, voucherRepo, customerRepo, cfg.Checkout.MaxCarts)
	checkoutService := service.NewCheckoutService(cartStore, productRepo, promotionRepo, redemptionRepo, voucherRepo, customerRepo, invoiceRepo, shopRepo, cartService, debtService, qrResolver, cfg.Checkout.InvoicePrefix)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	shopService := service.NewShopService(shopRepo, qrResolver)
	dashboardService := service.NewDashboardService(analyticsRepo)

	// Handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Promotion: handler.NewPromotionHandler(promotionService),
		Voucher:   handler.NewVoucherHandler(voucherService),
		Customer:  handler.NewCustomerHandler(customerService, debtService),
		Cart:      handler.NewCartHandler(cartService),
		Checkout:  handler.NewCheckoutHandler(checkoutService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Shop:      handler.NewShopHandler(shopService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	log.Printf("Starting %s on port %s", cfg.App.Name, cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
