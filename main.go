package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/routes"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Session store: redis when reachable, in-memory otherwise. The memory
	// store loses carts and OTP state on restart, fine for development.
	var store services.SessionStore
	if client := config.NewRedisClient(); client != nil {
		store = services.NewRedisSessionStore(client)
		log.Println("✅ Redis session store connected.")
	} else {
		store = services.NewMemorySessionStore()
		log.Println("⚠️  Redis unavailable; using in-memory session store")
	}

	docs := services.NewLocalDocumentStore(utils.EnvOrDefault("DOCUMENTS_DIR", "private/documents"))

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	cartService := services.NewCartService(store)
	otpService := services.NewOTPService(store)
	bookingService := services.NewBookingService(db, docs, cartService, otpService)
	reportService := services.NewReportService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(otpService)
	roomController := controllers.NewRoomController(availabilityService)
	cartController := controllers.NewCartController(cartService)
	bookingController := controllers.NewBookingController(bookingService)
	reportController := controllers.NewReportController(reportService)
	documentController := controllers.NewDocumentController(docs)

	// Build router
	router := routes.SetupRouter(
		authController,
		roomController,
		cartController,
		bookingController,
		reportController,
		documentController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
