package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every route handler so registration only needs a
// single value.
type HandlerBundle struct {
	// Booking endpoints.
	CreateBookingHandler gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc
	CancelBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc

	// Payment endpoints.
	CreatePaymentHandler   gin.HandlerFunc
	GetPaymentHandler      gin.HandlerFunc
	CompletePaymentHandler gin.HandlerFunc
	RefundPaymentHandler   gin.HandlerFunc
	ListPaymentsHandler    gin.HandlerFunc

	// Product endpoints.
	CreateProductHandler gin.HandlerFunc
	GetProductHandler    gin.HandlerFunc
	UpdateProductHandler gin.HandlerFunc
	DeleteProductHandler gin.HandlerFunc
	ListProductsHandler  gin.HandlerFunc

	// Notification endpoints.
	CreateNotificationHandler   gin.HandlerFunc
	GetNotificationHandler      gin.HandlerFunc
	MarkNotificationReadHandler gin.HandlerFunc
	ListNotificationsHandler    gin.HandlerFunc

	// Health endpoints.
	HealthStatusHandler      gin.HandlerFunc
	DatabaseHealthHandler    gin.HandlerFunc
	ApplicationHealthHandler gin.HandlerFunc
}
