package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"real-estate-api/config"
	"real-estate-api/controllers"
	"real-estate-api/middleware"
	"real-estate-api/models"
	"real-estate-api/services"
)

func main() {
	log.Println("Starting Real Estate Marketplace API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Appointment{}, &models.Property{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Listing photos live in S3
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	imageService := services.NewS3ImageService(s3Service)

	// The identity oracle client is constructed once and injected into the
	// gate and the auth service
	verifier := services.NewOracleService(cfg)

	router := setupRouter(db, verifier, imageService)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter assembles the middleware chain and routes. The authentication
// gate is registered before any business route so verification always
// precedes business logic on protected paths.
func setupRouter(db *gorm.DB, verifier services.TokenVerifier, images services.ImageService) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(middleware.EnsureValidToken(verifier))

	authController := controllers.NewAuthController(services.NewAuthService(db, verifier))
	appointmentController := controllers.NewAppointmentController(services.NewAppointmentService(db))
	propertyController := controllers.NewPropertyController(services.NewPropertyService(db, images))

	router.GET("/health", healthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/profile", authController.GetProfile)
		auth.PUT("/profile", authController.UpdateProfile)
	}

	appointments := router.Group("/appointments")
	{
		appointments.POST("", appointmentController.Create)
		appointments.GET("", appointmentController.List)
		appointments.GET("/:id", appointmentController.GetByID)
		appointments.PUT("/:id", appointmentController.Update)
		appointments.PATCH("/:id/status", appointmentController.UpdateStatus)
		appointments.DELETE("/:id", appointmentController.Delete)
	}

	properties := router.Group("/properties")
	{
		properties.POST("", propertyController.Create)
		properties.GET("", propertyController.List)
		properties.GET("/:id", propertyController.GetByID)
		properties.PUT("/:id", propertyController.Update)
		properties.DELETE("/:id", propertyController.Delete)
		properties.POST("/:id/image", propertyController.UploadImage)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Real Estate Marketplace API is running",
	})
}
