package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AlexGrady9/SuperShopBot/internal/bot"
	"github.com/AlexGrady9/SuperShopBot/internal/catalog"
	"github.com/AlexGrady9/SuperShopBot/internal/dialog"
	"github.com/AlexGrady9/SuperShopBot/internal/handler"
	mid "github.com/AlexGrady9/SuperShopBot/internal/middleware"
	"github.com/AlexGrady9/SuperShopBot/internal/order"
	"github.com/AlexGrady9/SuperShopBot/internal/session"
	"github.com/AlexGrady9/SuperShopBot/pkg/config"
	"github.com/AlexGrady9/SuperShopBot/pkg/database"
	"github.com/AlexGrady9/SuperShopBot/pkg/jwtutil"
	"github.com/AlexGrady9/SuperShopBot/pkg/logger"
	"github.com/AlexGrady9/SuperShopBot/prometheus"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load("supershopbot")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting supershopbot", appConfig.LogConfig()...)

	// Initialize JWT utility for the admin API
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database (order log, optional catalog source)
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Catalog source selection
	var source catalog.Source
	switch appConfig.Catalog.Source {
	case "db":
		source = catalog.NewDBSource(db)
	default:
		source = catalog.NewFileSource(appConfig.Catalog.Path)
	}
	catalogService := catalog.NewService(source, log)

	// Core wiring: sessions, order sink, dialogue machine, dispatcher
	sessions := session.NewStore()
	sink := order.NewGormSink(db, log)
	machine := dialog.NewMachine(catalogService)
	router := bot.NewRouter(sessions, machine, sink)

	for _, cmd := range bot.Commands() {
		log.Info("Registered command",
			zap.String("command", cmd.Name),
			zap.String("description", cmd.Description))
	}

	// Handlers
	webhookHandler := handler.NewWebhookHandler(router)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(order.NewFeed(db))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Messaging gateway webhook
	e.POST("/webhook", webhookHandler.Receive)
	e.GET("/webhook/commands", webhookHandler.Commands)

	// Admin read API - JWT protected
	adminAPI := e.Group("/api", mid.AuthMiddleware)
	adminAPI.GET("/products", catalogHandler.ListProducts)
	adminAPI.GET("/categories", catalogHandler.ListCategories)
	adminAPI.GET("/orders", orderHandler.ListOrders)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
