package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketmate-be/internal/cart"
	"marketmate-be/internal/logger"
	"marketmate-be/internal/metrics"
	"marketmate-be/internal/middleware"
	"marketmate-be/internal/order"
	"marketmate-be/internal/product"
	"marketmate-be/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Deps is everything the HTTP surface needs from the rest of the process.
type Deps struct {
	Users    user.Service
	Products product.Service
	Carts    cart.Service
	Orders   order.Service
	Tokens   middleware.TokenParser
	Counters *metrics.Registry

	// Ping checks the backing store for /health.
	Ping func(ctx context.Context) error

	CORSOrigins []string
	RateLimit   bool
}

func NewRouter(d Deps) *gin.Engine {
	if d.Counters == nil {
		d.Counters = metrics.NewRegistry()
	}

	r := gin.New()
	r.Use(
		logger.RequestID(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			middleware.AbortInternal(c, fmt.Errorf("panic: %v", recovered))
		}),
		logger.AccessLog(),
		cors.New(corsConfig(d.CORSOrigins)),
	)

	// The general tier sits behind Authenticate on protected routes so those
	// buckets are per account; public routes are bucketed per client IP.
	passthrough := func(c *gin.Context) { c.Next() }
	strict, general := passthrough, passthrough
	if d.RateLimit {
		limiter := middleware.NewLimiter()
		strict = limiter.Middleware(middleware.TierStrict)
		general = limiter.Middleware(middleware.TierGeneral)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	public := r.Group("", general)
	private := r.Group("", middleware.Authenticate(d.Tokens, d.Users), general)

	sys := NewSystemHandler(d.Ping, d.Counters)
	public.GET("/", sys.Welcome)
	public.GET("/health", sys.Health)

	authH := NewAuthHandler(d.Users)
	{
		authGroup := public.Group("/api/auth")
		authGroup.POST("/register", strict, authH.Register)
		authGroup.POST("/login", strict, authH.Login)

		private.GET("/api/auth/profile", authH.Profile)
	}

	adminH := NewAdminHandler(d.Users)
	{
		public.POST("/api/admin/login", strict, authH.AdminLogin)

		admin := private.Group("/api/admin", middleware.RequireAdmin())
		admin.GET("/pending-shopkeepers", adminH.PendingShopkeepers)
		admin.GET("/shopkeepers", adminH.ApprovedShopkeepers)
		admin.PUT("/shopkeepers/:id/approve", adminH.Approve)
		admin.DELETE("/shopkeepers/:id/reject", adminH.Reject)
	}

	private.GET("/api/shops/test", middleware.RequireApprovedShopkeeper(), sys.ShopTest)

	productH := NewProductHandler(d.Products)
	{
		catalog := public.Group("/api/products")
		catalog.GET("", productH.List)
		catalog.GET("/offers/today", productH.TodaysOffers)
		catalog.GET("/compare/:productName", productH.Compare)
		catalog.GET("/:id", productH.Get)

		owner := private.Group("/api/products", middleware.RequireApprovedShopkeeper())
		owner.GET("/my/products", productH.Mine)
		owner.POST("", productH.Create)
		owner.PUT("/:id", productH.Update)
		owner.DELETE("/:id", productH.Delete)
	}

	cartH := NewCartHandler(d.Carts)
	carts := private.Group("/api/cart", middleware.RequireShopper())
	{
		carts.GET("", cartH.Get)
		carts.POST("/add", cartH.Add)
		carts.PUT("/update", cartH.Update)
		carts.POST("/remove", cartH.Remove)
		carts.POST("/clear", cartH.Clear)
	}

	orderH := NewOrderHandler(d.Orders)
	orders := private.Group("/api/orders", middleware.RequireShopper())
	{
		orders.POST("", orderH.Create)
		orders.GET("", orderH.List)
		orders.GET("/:id", orderH.Get)
	}

	return r
}

// corsConfig allows the configured origins, or any origin without
// credentials when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logger.HeaderRequestID},
		ExposeHeaders: []string{logger.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
