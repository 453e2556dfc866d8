package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"artist-submissions-api/config"
	"artist-submissions-api/controllers"
	"artist-submissions-api/middleware"
	"artist-submissions-api/routes"
	"artist-submissions-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// Initialize database
	db := config.InitDB(cfg)

	// Create submissions root if not exists
	if err := os.MkdirAll(cfg.SubmissionsRoot, os.ModePerm); err != nil {
		log.Fatal("Failed to create submissions directory: ", err)
	}

	// Wire the intake pipeline
	repo := services.NewSubmissionRepository(db)
	if err := repo.EnsureUniqueIndex(); err != nil {
		log.Fatal("Schema check failed: ", err)
	}

	policy := services.IntakePolicy{
		MaxFiles:    cfg.MaxFilesPerSubmit,
		MaxFileSize: cfg.MaxFileSize,
	}
	store := services.NewArtifactStore(cfg.SubmissionsRoot, cfg.SiteName, cfg.Timezone)
	notifier := services.NewEmailNotifier(config.NewMailer(cfg.SMTP), db, cfg.NotificationEmail, cfg.Timezone)
	intake := services.NewIntakeService(policy, store, repo, notifier, cfg.Timezone)

	// Set Gin mode
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	// Uploads above this threshold spill to temp files instead of memory.
	router.MaxMultipartMemory = cfg.MaxFileSize

	routes.SetupRoutes(router, cfg, routes.Controllers{
		Submissions:      controllers.NewSubmissionController(intake, cfg),
		AdminSubmissions: controllers.NewAdminSubmissionController(db),
		Auth:             controllers.NewAuthController(db, cfg),
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
