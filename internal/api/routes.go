package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	advisorService service.AdvisorService,
	log *logger.Logger,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService, log)
	advisorHandler := NewAdvisorHandler(advisorService, log)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC()})
	})

	// Public generation endpoints. The profile travels in the body.
	public := router.Group("/api")
	{
		public.GET("/health-score", advisorHandler.HealthScoreProbe)
		public.POST("/health-score", advisorHandler.HealthScore)
		public.POST("/health-plans", advisorHandler.HealthPlans)
		public.POST("/groq/generate-plan", advisorHandler.GeneratePlan)
		public.POST("/plan-activities", advisorHandler.PlanActivities)
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})
		protected.GET("/me/profile", profileHandler.GetMyProfile)
		protected.PUT("/me/profile", profileHandler.PutMyProfile)

		plans := protected.Group("/plans")
		{
			plans.GET("", planHandler.ListMyPlans)
			plans.GET("/active", planHandler.GetActivePlan)
			plans.POST("/two-day", planHandler.GenerateTwoDay)
			plans.POST("/select", planHandler.SelectPlan)
			plans.POST("/:planId/export", planHandler.ExportPlan)
		}

		admin := protected.Group("/admin")
		admin.Use(RoleMiddleware(domain.RoleAdmin))
		{
			admin.GET("/users/:userId/plans", planHandler.ListUserPlans)
		}
	}
}
