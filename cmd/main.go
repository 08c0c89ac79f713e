package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hqnguyen/elevenprep/config"
	"github.com/hqnguyen/elevenprep/database"
	_ "github.com/hqnguyen/elevenprep/docs" // Swagger docs - auto-generated
	authctrl "github.com/hqnguyen/elevenprep/internal/controller/auth"
	"github.com/hqnguyen/elevenprep/internal/controller/middleware"
	userctrl "github.com/hqnguyen/elevenprep/internal/controller/user"
	"github.com/hqnguyen/elevenprep/internal/logger"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/repository"
	"github.com/hqnguyen/elevenprep/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title ElevenPrep Practice API
// @version 1.0
// @description API for 11+ exam practice: subjects, timed practice sessions, answer recording and scored history.
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
			repository.NewSubjectRepository,
			repository.NewQuestionRepository,
			repository.NewSessionRepository,
			repository.NewAttemptRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewSubjectService,
			service.NewQuestionService,
			service.NewSessionService,
			service.NewAttemptService,
			service.NewHistoryService,
		),

		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewSessionController,
			userctrl.NewSubjectController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
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

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authController *authctrl.AuthController,
	sessionController *userctrl.SessionController,
	subjectController *userctrl.SubjectController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", authController.SignUp)
		api.POST("/auth/login", authController.LogIn)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.GET("/me", authController.GetProfile)
		authed.PUT("/me", authController.UpdateProfile)

		authed.GET("/subjects", subjectController.ListSubjects)
		authed.GET("/subjects/:subject_id/topics", subjectController.ListTopics)
		authed.GET("/subjects/:subject_id/questions", subjectController.BrowseQuestions)

		authed.POST("/sessions", sessionController.StartSession)
		authed.GET("/sessions", sessionController.ListSessionHistory)
		authed.GET("/sessions/:session_id", sessionController.GetSession)
		authed.DELETE("/sessions/:session_id", sessionController.DeleteSession)
		authed.GET("/sessions/:session_id/questions", sessionController.LoadSessionQuestions)
		authed.POST("/sessions/:session_id/answers", sessionController.RecordAnswer)
		authed.POST("/sessions/:session_id/complete", sessionController.CompleteSession)
		authed.GET("/sessions/:session_id/summary", sessionController.GetSessionSummary)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ElevenPrep API server starting on port %s", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB, subjectRepo repository.SubjectRepository) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Topic{},
		&model.Question{},
		&model.AnswerOption{},
		&model.PracticeSession{},
		&model.SessionQuestion{},
		&model.QuestionAttempt{},
		&model.AttemptOptionOrder{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	seed := []model.Subject{
		{Code: model.SubjectMaths, Name: "Maths"},
		{Code: model.SubjectEnglish, Name: "English"},
		{Code: model.SubjectVerbal, Name: "Verbal Reasoning"},
		{Code: model.SubjectNonVerbal, Name: "Non-Verbal Reasoning"},
	}
	for i := range seed {
		if err := subjectRepo.UpsertByCode(&seed[i]); err != nil {
			log.Error().Err(err).Str("code", seed[i].Code).Msg("Subject seed failed")
			return err
		}
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
