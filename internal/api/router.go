package api

import (
	"perfume-store/internal/api/handlers"
	"perfume-store/internal/api/middleware"
	"perfume-store/internal/config"
	"perfume-store/internal/db/queries"
	"perfume-store/internal/metrics"
	"perfume-store/internal/models"
	"perfume-store/internal/storefront"
	"perfume-store/internal/token"
	"perfume-store/internal/users"
	"perfume-store/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps - зависимости HTTP-слоя
type Deps struct {
	Config          *config.Config
	Log             *zap.Logger
	Store           *storefront.Service
	Sessions        token.Maker
	JWT             utils.JWTManagerInterface
	Users           queries.AuthQueriesInterface
	PasswordChecker utils.PasswordCheckerInterface
}

func SetupRouter(deps Deps) *gin.Engine {
	cfg := deps.Config

	// Создаем экземпляр Gin
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(metrics.Middleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Создаем обработчики
	catalogHandler := handlers.NewCatalogHandler(deps.Store)
	cartHandler := handlers.NewCartHandler(deps.Store)
	collectionsHandler := handlers.NewCollectionsHandler(deps.Store)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Store)
	ordersHandler := handlers.NewOrdersHandler(deps.Store)
	accountHandler := handlers.NewAccountHandler(deps.Store)
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, cfg.Session.Lifetime, deps.Store)
	promoHandler := handlers.NewPromoHandler(cfg.Promo.EndsAt, cfg.Promo.TickInterval)
	productHandler := handlers.NewProductHandler(deps.Store)
	staff := users.NewDirectory(deps.Users, deps.PasswordChecker, cfg.Admin.Email, deps.Log)
	authHandler := handlers.NewAuthHandler(deps.JWT, staff)

	// Публичные маршруты (без сессии)
	publicRoutes := router.Group("")
	{
		publicRoutes.GET("/products", catalogHandler.ListProducts)
		publicRoutes.GET("/products/facets", catalogHandler.Facets)
		publicRoutes.GET("/products/:id", middleware.OptionalSession(deps.Sessions), catalogHandler.GetProduct)
		publicRoutes.GET("/products/:id/reviews", catalogHandler.Reviews)
		publicRoutes.POST("/products/:id/reviews", catalogHandler.AddReview)
		publicRoutes.POST("/products/:id/reviews/:reviewId/helpful", catalogHandler.MarkHelpful)

		publicRoutes.GET("/promo", promoHandler.Countdown)
		publicRoutes.GET("/promo/countdown", promoHandler.Stream)

		publicRoutes.POST("/session", sessionHandler.Create)
	}

	// Маршруты покупательской сессии
	sessionRoutes := router.Group("")
	sessionRoutes.Use(middleware.SessionMiddleware(deps.Sessions))
	{
		sessionRoutes.GET("/session", sessionHandler.Snapshot)
		sessionRoutes.POST("/session/import", sessionHandler.Import)

		sessionRoutes.GET("/cart", cartHandler.Get)
		sessionRoutes.POST("/cart/items", cartHandler.AddItem)
		sessionRoutes.PUT("/cart/items/:id", cartHandler.SetQuantity)
		sessionRoutes.DELETE("/cart/items/:id", cartHandler.RemoveItem)
		sessionRoutes.DELETE("/cart", cartHandler.Clear)

		sessionRoutes.GET("/wishlist", collectionsHandler.Wishlist)
		sessionRoutes.POST("/wishlist/:id", collectionsHandler.ToggleWishlist)
		sessionRoutes.GET("/comparison", collectionsHandler.Comparison)
		sessionRoutes.POST("/comparison/:id", collectionsHandler.ToggleComparison)
		sessionRoutes.GET("/recently-viewed", catalogHandler.RecentlyViewed)
		sessionRoutes.GET("/recommendations", catalogHandler.Recommendations)

		sessionRoutes.GET("/checkout", checkoutHandler.Get)
		sessionRoutes.PUT("/checkout/contact", checkoutHandler.SetContact)
		sessionRoutes.PUT("/checkout/delivery", checkoutHandler.SetDelivery)
		sessionRoutes.POST("/checkout/next", checkoutHandler.Next)
		sessionRoutes.POST("/checkout/back", checkoutHandler.Back)
		sessionRoutes.POST("/checkout/promo", checkoutHandler.ApplyPromo)
		sessionRoutes.POST("/checkout/complete", checkoutHandler.Complete)
		sessionRoutes.DELETE("/checkout", checkoutHandler.Abandon)

		sessionRoutes.GET("/orders", ordersHandler.SessionOrders)
		sessionRoutes.GET("/loyalty", ordersHandler.Loyalty)

		sessionRoutes.GET("/notifications", accountHandler.Notifications)
		sessionRoutes.POST("/notifications/read", accountHandler.MarkAllRead)
		sessionRoutes.POST("/notifications/:id/read", accountHandler.MarkRead)
		sessionRoutes.DELETE("/notifications", accountHandler.Clear)

		sessionRoutes.GET("/profile", accountHandler.Profile)
		sessionRoutes.PUT("/profile", accountHandler.UpdateProfile)
	}

	// Вход в админку ограничен по частоте для каждого IP
	loginLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst)
	router.POST("/admin/login", middleware.RateLimit(loginLimiter), authHandler.Login)

	// Маршруты админки (с авторизацией)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(deps.JWT))
	{
		adminOnly := adminRoutes.Group("")
		adminOnly.Use(middleware.RequireRole(models.RoleAdmin))
		{
			adminOnly.GET("/users", authHandler.ListUsers)
			adminOnly.POST("/users", authHandler.Register)

			adminOnly.POST("/products", productHandler.Create)
			adminOnly.POST("/products/import", productHandler.Import)
			adminOnly.PUT("/products/:id", productHandler.Update)
			adminOnly.DELETE("/products/:id", productHandler.Delete)
		}

		orderRoutes := adminRoutes.Group("/orders")
		orderRoutes.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
		{
			orderRoutes.GET("", ordersHandler.List)
			orderRoutes.PATCH("/:id/status", ordersHandler.SetStatus)
			orderRoutes.DELETE("/:id", ordersHandler.Delete)
		}
	}

	return router
}

