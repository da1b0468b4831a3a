package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minhphamdev/banle-api/internal/config"
	domainRepo "github.com/minhphamdev/banle-api/internal/domain/repository"
	"github.com/minhphamdev/banle-api/internal/presentation/http/handler"
	"github.com/minhphamdev/banle-api/internal/presentation/http/middleware"
	"github.com/minhphamdev/banle-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Promotion *handler.PromotionHandler
	Voucher   *handler.VoucherHandler
	Customer  *handler.CustomerHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Invoice   *handler.InvoiceHandler
	Shop      *handler.ShopHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(deps.IdempotencyRepo)

	account := rg.Group("/auth")
	{
		account.GET("/profile", h.Auth.Profile)
		account.POST("/change-password", h.Auth.ChangePassword)
		account.POST("/register", middleware.RequireRole("admin"), h.Auth.Register)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	promotions := rg.Group("/promotions")
	{
		promotions.GET("", h.Promotion.List)
		promotions.GET("/:id", h.Promotion.Get)
		promotions.POST("", h.Promotion.Create)
		promotions.PUT("/:id", h.Promotion.Update)
		promotions.DELETE("/:id", h.Promotion.Delete)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("", h.Voucher.List)
		vouchers.GET("/:id", h.Voucher.Get)
		vouchers.POST("", h.Voucher.Create)
		vouchers.PUT("/:id", h.Voucher.Update)
		vouchers.DELETE("/:id", h.Voucher.Delete)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)

		customers.GET("/:id/debt", h.Customer.DebtHistory)
		customers.GET("/:id/debt/invoices", h.Customer.DebtInvoices)
		customers.POST("/:id/debt/add", idempotency, h.Customer.AddDebt)
		customers.POST("/:id/debt/pay", idempotency, h.Customer.PayDebt)
		customers.POST("/:id/debt/pay-invoices", idempotency, h.Customer.PayInvoices)
	}

	carts := rg.Group("/carts")
	{
		carts.GET("", h.Cart.Get)
		carts.POST("", h.Cart.Create)
		carts.POST("/:id/switch", h.Cart.Switch)
		carts.DELETE("/:id", h.Cart.Delete)

		carts.POST("/active/items", h.Cart.AddItem)
		carts.PUT("/active/items/:productId", h.Cart.UpdateItem)
		carts.DELETE("/active/items/:productId", h.Cart.RemoveItem)
		carts.POST("/active/voucher", h.Cart.ApplyVoucher)
		carts.DELETE("/active/voucher", h.Cart.RemoveVoucher)
		carts.PUT("/active/customer", h.Cart.SetCustomer)
		carts.POST("/active/clear", h.Cart.Clear)
	}

	checkout := rg.Group("/checkout")
	{
		checkout.GET("/preview", h.Checkout.Preview)
		checkout.POST("", idempotency, h.Checkout.Commit)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/code/:code", h.Invoice.GetByCode)
	}

	shop := rg.Group("/shop")
	{
		shop.GET("", h.Shop.Get)
		shop.PUT("", middleware.RequireRole("admin"), h.Shop.Update)
	}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
	}
}
