package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/kryonic-fluke/PawRescue-sub001/config"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/handler"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/messaging"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/repository"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/service"
)

func main() {
	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Connect to RabbitMQ
	rmq, err := messaging.NewRabbitMQ(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
	)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()
	log.Println("Connected to RabbitMQ")

	// Initialize repositories
	reportRepo := repository.NewReportRepository(db)
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// Start outbox worker
	outboxWorker := messaging.NewOutboxWorker(outboxRepo, rmq)
	outboxWorker.Start()
	defer outboxWorker.Stop()

	// Start delivery consumer
	sender := messaging.NewLogSender(cfg.Mail.FromAddress)
	consumer := messaging.NewDeliveryConsumer(rmq, notificationRepo, sender)
	consumer.Start()
	defer consumer.Stop()
	log.Println("Delivery consumer started")

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, outboxRepo, userRepo)
	reportService := service.NewReportService(reportRepo, userRepo, orgRepo, notificationService)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Setup Gin
	r := gin.Default()

	// Health check
	r.GET("/health", reportHandler.Health)

	// Report routes
	reports := r.Group("/reports")
	{
		reports.POST("", reportHandler.CreateReport)
		reports.GET("", reportHandler.ListReports)
		reports.GET("/:id", reportHandler.GetReportByID)
		reports.PUT("/:id", reportHandler.UpdateReport)
		reports.DELETE("/:id", reportHandler.DeleteReport)
	}

	// Notification routes
	r.GET("/notifications", notificationHandler.GetNotifications)

	// Admin/monitoring routes
	admin := r.Group("/admin")
	{
		admin.GET("/outbox/stats", notificationHandler.GetOutboxStats)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutdown signal received...")
		consumer.Stop()
		outboxWorker.Stop()
		log.Println("Report service stopped gracefully")
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Report service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
