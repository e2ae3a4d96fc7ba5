package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"prbal/handlers"
)

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/", hb.CreateBookingHandler)
		api.GET("/", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PATCH("/:id", hb.UpdateBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
	}
}

// RegisterPaymentRoutes registers the payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/", hb.CreatePaymentHandler)
		api.GET("/", hb.ListPaymentsHandler)
		api.GET("/:id", hb.GetPaymentHandler)
		api.POST("/:id/complete", hb.CompletePaymentHandler)
		api.POST("/:id/refund", hb.RefundPaymentHandler)
	}
}

// RegisterProductRoutes registers the product catalogue endpoints.
func RegisterProductRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/products")
	{
		api.POST("/", hb.CreateProductHandler)
		api.GET("/", hb.ListProductsHandler)
		api.GET("/:id", hb.GetProductHandler)
		api.PATCH("/:id", hb.UpdateProductHandler)
		api.DELETE("/:id", hb.DeleteProductHandler)
	}
}

// RegisterNotificationRoutes registers the notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.POST("/", hb.CreateNotificationHandler)
		api.GET("/", hb.ListNotificationsHandler)
		api.GET("/:id", hb.GetNotificationHandler)
		api.POST("/:id/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterHealthRoutes registers the health-check endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthStatusHandler)
	r.GET("/health/db", hb.DatabaseHealthHandler)
	r.GET("/health/app", hb.ApplicationHealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterProductRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoutes(r, hb)
}
