package main

import (
	"log"
	"os"
	"time"

	"github.com/Mwangea/RentalApartmentsBackend/handlers/analytics"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/leases"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/maintenance"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/notifications"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/payments"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/properties"
	"github.com/Mwangea/RentalApartmentsBackend/migrations"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/mpesa"
	"github.com/Mwangea/RentalApartmentsBackend/seed"
	"github.com/Mwangea/RentalApartmentsBackend/services"
	"github.com/Mwangea/RentalApartmentsBackend/store"
	"github.com/Mwangea/RentalApartmentsBackend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	allowedOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	migrations.MigrateUsers()
	migrations.MigrateProperties()
	migrations.MigratePayments()
	migrations.MigrateMaintenance()
	migrations.MigrateNotifications()
	migrations.MigrateAnalytics()

	// Seed Initial Data
	if err := seed.SeedAdminUser(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	notifier := services.NewNotificationService(utils.DB)
	orchestrator := services.NewPaymentOrchestrator(
		mpesa.NewClient(mpesa.LoadConfig()),
		store.NewGormPaymentStore(utils.DB),
		store.NewGormDirectory(utils.DB),
		notifier,
	)
	paymentsAPI := payments.NewAPI(orchestrator)
	maintenanceAPI := maintenance.NewAPI(notifier)

	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	paymentsAPI.RegisterCallbackRoute(r)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/logout", auth.Logout)
		protected.POST("/save-push-token", auth.SavePushToken)
		protected.PUT("/admin/landlords/:id/approve", auth.ApproveLandlord)
		protected.GET("/admin/landlords/pending", auth.GetPendingLandlords)
		protected.GET("/admin/landlords", auth.GetUsersByRole(models.RoleLandlord))
		protected.GET("/admin/tenants", auth.GetUsersByRole(models.RoleTenant))

		protected.GET("/properties", properties.GetProperties)
		protected.GET("/properties/:id", properties.GetProperty)
		protected.POST("/properties", properties.CreateProperty)
		protected.PUT("/properties/:id", properties.UpdateProperty)
		protected.DELETE("/properties/:id", properties.DeleteProperty)
		protected.PUT("/properties/:id/rent-amount", properties.UpdateRentAmount)
		protected.POST("/properties/:id/select", properties.SelectProperty)

		protected.POST("/leases", leases.CreateLease)
		protected.GET("/leases", leases.GetLeases)
		protected.GET("/leases/:id", leases.GetLease)
		protected.GET("/my-leases", leases.GetMyLeases)

		paymentsAPI.RegisterRoutes(protected)
		maintenanceAPI.RegisterRoutes(protected)
		notifications.RegisterNotificationsRoutes(protected, notifier)
		analytics.RegisterAnalyticsRoutes(protected)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
