package routes

import (
	"github.com/gin-gonic/gin"

	"artist-submissions-api/config"
	"artist-submissions-api/controllers"
	"artist-submissions-api/middleware"
)

// Controllers bundles the wired handlers mounted by SetupRoutes.
type Controllers struct {
	Submissions      *controllers.SubmissionController
	AdminSubmissions *controllers.AdminSubmissionController
	Auth             *controllers.AuthController
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, ctl Controllers) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Artist intake
			public.POST("/submissions", ctl.Submissions.CreateSubmission)

			// Admin authentication
			public.POST("/login", ctl.Auth.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Artist Submissions API is running",
				})
			})
		}

		// Review surface (requires authentication)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			admin.GET("/profile", ctl.Auth.GetProfile)

			admin.GET("/submissions", ctl.AdminSubmissions.GetSubmissions)
			admin.GET("/submissions/:id", ctl.AdminSubmissions.GetSubmission)

			// Only reviewers and admins may change review state
			admin.PUT("/submissions/:id/status",
				middleware.RequireRole("admin", "reviewer"),
				ctl.AdminSubmissions.UpdateStatus)

			admin.GET("/dashboard/stats", ctl.AdminSubmissions.GetDashboardStats)
		}
	}
}
