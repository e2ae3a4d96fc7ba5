package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"prbal/config"
	"prbal/database"
	"prbal/database/repository"
	"prbal/handlers"
	"prbal/middleware"
	"prbal/models"
	"prbal/routes"
	"prbal/services/health"
	"prbal/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	models.SetLogger(logger)

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := repository.NewMongoBookingRepo(database.Collection("bookings"))
	paymentRepo := repository.NewMongoPaymentRepo(database.Collection("payments"))
	productRepo := repository.NewMongoProductRepo(database.Collection("products"))
	notificationRepo := repository.NewMongoNotificationRepo(database.Collection("notifications"))

	// background health monitor.
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	monitor := health.NewMonitor(database.MongoClient, utils.GetCacheClient())
	monitor.Start(monitorCtx)

	bookingHandler := handlers.NewBookingHandler(bookingRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	healthHandler := handlers.NewHealthHandler(monitor)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Booking endpoints.
		CreateBookingHandler: bookingHandler.CreateBookingHandler,
		GetBookingHandler:    bookingHandler.GetBookingHandler,
		UpdateBookingHandler: bookingHandler.UpdateBookingHandler,
		CancelBookingHandler: bookingHandler.CancelBookingHandler,
		ListBookingsHandler:  bookingHandler.ListBookingsHandler,

		// Payment endpoints.
		CreatePaymentHandler:   paymentHandler.CreatePaymentHandler,
		GetPaymentHandler:      paymentHandler.GetPaymentHandler,
		CompletePaymentHandler: paymentHandler.CompletePaymentHandler,
		RefundPaymentHandler:   paymentHandler.RefundPaymentHandler,
		ListPaymentsHandler:    paymentHandler.ListPaymentsHandler,

		// Product endpoints.
		CreateProductHandler: productHandler.CreateProductHandler,
		GetProductHandler:    productHandler.GetProductHandler,
		UpdateProductHandler: productHandler.UpdateProductHandler,
		DeleteProductHandler: productHandler.DeleteProductHandler,
		ListProductsHandler:  productHandler.ListProductsHandler,

		// Notification endpoints.
		CreateNotificationHandler:   notificationHandler.CreateNotificationHandler,
		GetNotificationHandler:      notificationHandler.GetNotificationHandler,
		MarkNotificationReadHandler: notificationHandler.MarkNotificationReadHandler,
		ListNotificationsHandler:    notificationHandler.ListNotificationsHandler,

		// Health endpoints.
		HealthStatusHandler:      healthHandler.HealthStatusHandler,
		DatabaseHealthHandler:    healthHandler.DatabaseHealthHandler,
		ApplicationHealthHandler: healthHandler.ApplicationHealthHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
