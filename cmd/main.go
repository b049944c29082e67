package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizforge/config"
	"quizforge/database"
	_ "quizforge/docs" // Swagger docs
	adminctrl "quizforge/internal/controller/admin"
	authctrl "quizforge/internal/controller/auth"
	userctrl "quizforge/internal/controller/user"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/model"
	"quizforge/internal/repository"
	"quizforge/internal/service"
)

// @title QuizForge API
// @version 1.0
// @description Quiz platform with AI-generated quizzes, server-side grading and learning analytics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewResultRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewQuizService,
			service.NewSubmissionService,
			service.NewGeminiService,
			service.NewTemplateGenerator,
			service.NewGenerationService,
			service.NewStreakCalculatorService,
			service.NewAnalyticsService,
			service.NewAdminAnalyticsService,
		),

		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewQuizController,
			userctrl.NewAnalyticsController,
			adminctrl.NewAdminQuizController,
			adminctrl.NewAdminAnalyticsController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authCtrl *authctrl.AuthController,
	quizCtrl *userctrl.QuizController,
	analyticsCtrl *userctrl.AnalyticsController,
	adminQuizCtrl *adminctrl.AdminQuizController,
	adminAnalyticsCtrl *adminctrl.AdminAnalyticsController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.GET("/profile", middleware.Authenticate(authService), authCtrl.Profile)
	}

	userGroup := api.Group("")
	userGroup.Use(middleware.Authenticate(authService))
	{
		userGroup.GET("/quizzes", quizCtrl.ListQuizzes)
		userGroup.GET("/quizzes/mine", quizCtrl.MyQuizzes)
		userGroup.GET("/quizzes/:quiz_id", quizCtrl.GetQuiz)
		userGroup.POST("/quizzes/:quiz_id/submit", quizCtrl.SubmitQuiz)
		userGroup.POST("/quizzes/generate", quizCtrl.GenerateQuiz)
		userGroup.GET("/analytics/user", analyticsCtrl.UserAnalytics)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.Authenticate(authService), middleware.RequireAdmin())
	{
		adminGroup.POST("/quizzes", adminQuizCtrl.CreateQuiz)
		adminGroup.GET("/quizzes/pending", adminQuizCtrl.PendingQuizzes)
		adminGroup.PUT("/quizzes/:quiz_id/status", adminQuizCtrl.UpdateQuizStatus)
		adminGroup.DELETE("/quizzes/:quiz_id", adminQuizCtrl.DeleteQuiz)
		adminGroup.GET("/analytics", adminAnalyticsCtrl.PlatformAnalytics)
		adminGroup.GET("/users", adminAnalyticsCtrl.ListUsers)
		adminGroup.GET("/users/:user_id/activity", adminAnalyticsCtrl.UserActivity)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizForge API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Result{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
