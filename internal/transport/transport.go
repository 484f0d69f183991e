package transport

import (
	"github.com/restobook/restaurant-backend/config"
	"github.com/restobook/restaurant-backend/internal/transport/middleware"
	"github.com/restobook/restaurant-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// InitRoutes собирает HTTP-поверхность: edge-мидлвари на всем роутере,
// гейт авторизации только на мутирующих операциях и списке бронирований.
func InitRoutes(
	cfg *config.Config,
	bookingHandler *BookingHandler,
	productHandler *ProductHandler,
	authHandler *AuthHandler,
	tokenManager *auth.TokenManager,
	redisClient *redis.Client,
) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	authorized := middleware.Authorize(tokenManager)

	api := router.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Booking routes: создание публичное, остальное за гейтом
		bookings := api.Group("/bookings")
		{
			bookings.GET("", authorized, bookingHandler.GetBookings)
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.PATCH("/:id/status", authorized, bookingHandler.UpdateStatus)
			bookings.DELETE("/:id", authorized, bookingHandler.DeleteBooking)
		}

		// Product routes: чтение публичное, мутации за гейтом
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetAllProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", authorized, productHandler.CreateProduct)
			products.PUT("/:id", authorized, productHandler.UpdateProduct)
			products.DELETE("/:id", authorized, productHandler.DeleteProduct)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": cfg.Server.AppVersion,
		})
	})

	return router
}
