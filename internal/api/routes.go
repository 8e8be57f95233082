package api

import (
	"net/http"

	"github.com/megaJingHua/PixelGym/internal/domain"
	"github.com/megaJingHua/PixelGym/internal/repository"
	"github.com/megaJingHua/PixelGym/internal/service"
	"github.com/megaJingHua/PixelGym/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every API endpoint on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	sessions repository.SessionRepository,
	userRepo repository.UserRepository,
	authService service.AuthService,
	accountService service.AccountService,
	logService service.LogService,
	exerciseService service.ExerciseService,
	battleService service.BattleService,
	achievementService service.AchievementService,
	fileStorage storage.FileStorage,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(accountService)
	logHandler := NewLogHandler(logService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	battleHandler := NewBattleHandler(battleService)
	achievementHandler := NewAchievementHandler(achievementService)
	uploadHandler := NewUploadHandler(fileStorage)

	authMiddleware := AuthMiddleware(jwtSecret, sessions, userRepo)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/update-account", authMiddleware, authHandler.UpdateAccount)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Accounts ---
		// Listing stays open to authenticated callers: names for logs,
		// battles and wiki entries are resolved client-side.
		userGroup := protected.Group("/users")
		{
			userGroup.GET("", userHandler.ListUsers)
			userGroup.GET("/:id", userHandler.GetUser)

			userGroup.POST("", SuperAdminMiddleware(), userHandler.UpsertUser)
			userGroup.DELETE("/:id", SuperAdminMiddleware(), userHandler.DeleteUser)
			userGroup.POST("/:id/approve", SuperAdminMiddleware(), userHandler.ApproveUser)
			userGroup.POST("/:id/status", SuperAdminMiddleware(), userHandler.SetStatus)
			userGroup.POST("/:id/coach", SuperAdminMiddleware(), userHandler.AssignCoach)
		}

		// --- Workout logs ---
		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.ListLogs)
			logGroup.POST("", logHandler.CreateLog)
			logGroup.PUT("/:id", logHandler.UpdateLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)

			// POST /api/v1/logs/assign - one plan copy per listed student
			logGroup.POST("/assign", RoleMiddleware(domain.RoleCoach), logHandler.AssignPlan)
			logGroup.POST("/:id/share", RoleMiddleware(domain.RoleStudent), logHandler.ShareLog)
			logGroup.POST("/:id/complete", RoleMiddleware(domain.RoleStudent), logHandler.CompletePlan)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", RoleMiddleware(domain.RoleCoach), exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", RoleMiddleware(domain.RoleCoach), exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", RoleMiddleware(domain.RoleCoach), exerciseHandler.DeleteExercise)
		}

		// --- Battles ---
		battleGroup := protected.Group("/battles")
		{
			battleGroup.GET("", battleHandler.ListBattles)
			// Students and coaches both issue challenges; deletion is
			// author-checked in the service.
			battleGroup.POST("", battleHandler.CreateBattle)
			battleGroup.DELETE("/:id", battleHandler.DeleteBattle)
			battleGroup.POST("/:id/like", battleHandler.Like)
			battleGroup.POST("/:id/comments", battleHandler.AddComment)
			battleGroup.POST("/:id/records", RoleMiddleware(domain.RoleStudent), battleHandler.SubmitRecord)
		}

		// --- Achievements ---
		achievementGroup := protected.Group("/achievements")
		{
			achievementGroup.GET("", achievementHandler.ListAchievements)
			achievementGroup.GET("/progress", achievementHandler.Progress)
			achievementGroup.POST("", RoleMiddleware(domain.RoleCoach), achievementHandler.DefineAchievement)
			achievementGroup.DELETE("/:id", RoleMiddleware(domain.RoleCoach), achievementHandler.RemoveAchievement)
			achievementGroup.PUT("/system/:id", SuperAdminMiddleware(), achievementHandler.SetSystemThreshold)
			achievementGroup.POST("/pin", RoleMiddleware(domain.RoleStudent), achievementHandler.PinBadge)
			achievementGroup.POST("/unpin", RoleMiddleware(domain.RoleStudent), achievementHandler.UnpinBadge)
		}

		protected.POST("/upload", uploadHandler.Upload)
	}
}
