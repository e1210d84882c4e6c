package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/adapters/document"
	"github.com/khoahotran/educursus/adapters/embedding"
	"github.com/khoahotran/educursus/adapters/event"
	httpAdapter "github.com/khoahotran/educursus/adapters/http"
	"github.com/khoahotran/educursus/adapters/llm"
	"github.com/khoahotran/educursus/adapters/media_storage"
	"github.com/khoahotran/educursus/adapters/persistence"
	"github.com/khoahotran/educursus/adapters/report"
	authUC "github.com/khoahotran/educursus/internal/application/usecase/auth"
	careerUC "github.com/khoahotran/educursus/internal/application/usecase/career"
	certificateUC "github.com/khoahotran/educursus/internal/application/usecase/certificate"
	chatUC "github.com/khoahotran/educursus/internal/application/usecase/chat"
	dashboardUC "github.com/khoahotran/educursus/internal/application/usecase/dashboard"
	interviewUC "github.com/khoahotran/educursus/internal/application/usecase/interview"
	learningUC "github.com/khoahotran/educursus/internal/application/usecase/learning"
	marketUC "github.com/khoahotran/educursus/internal/application/usecase/market"
	onboardingUC "github.com/khoahotran/educursus/internal/application/usecase/onboarding"
	profileUC "github.com/khoahotran/educursus/internal/application/usecase/profile"
	progressUC "github.com/khoahotran/educursus/internal/application/usecase/progress"
	roadmapUC "github.com/khoahotran/educursus/internal/application/usecase/roadmap"
	skillUC "github.com/khoahotran/educursus/internal/application/usecase/skill"
	stateUC "github.com/khoahotran/educursus/internal/application/usecase/state"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/pkg/auth"
	"github.com/khoahotran/educursus/pkg/logger"
	"github.com/khoahotran/educursus/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Educursus API Server...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "educursus-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tracing.Shutdown(context.Background(), tp)

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()
	cache := persistence.NewRedisCache(redisClient)

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	generator, err := llm.NewTextGenerator(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init text generator", err)
	}

	embedder, err := embedding.NewOllamaAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Embeddings unavailable, career matching uses keywords", zap.Error(err))
		embedder = embedding.NewDisabledEmbedder()
	}

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Object storage unavailable, report export disabled", zap.Error(err))
		uploader = media_storage.NewDisabledUploader()
	}

	// Repositories
	studentRepo := persistence.NewPostgresStudentRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	progressRepo := persistence.NewPostgresProgressRepo(dbPool)
	tokenRepo := persistence.NewPostgresTokenRepo(dbPool)
	roadmapRepo := persistence.NewPostgresRoadmapRepo(dbPool)
	careerRepo := persistence.NewPostgresCareerRepo(dbPool)
	interviewRepo := persistence.NewPostgresInterviewRepo(dbPool)
	chatRepo := persistence.NewPostgresChatRepo(dbPool)
	stateRepo := persistence.NewPostgresStateRepo(dbPool)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool)
	learningRepo := persistence.NewPostgresLearningRepo(dbPool)
	sessionStore := persistence.NewOnboardingSessionStore(cache)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(studentRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(studentRepo, jwtSvc, appLogger)
	onboardingUseCase := onboardingUC.NewOnboardingUseCase(sessionStore, profileRepo, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, document.NewTextExtractor(), generator, appLogger)
	careerUseCase := careerUC.NewCareerUseCase(profileRepo, roadmapRepo, careerRepo, skillRepo, generator, embedder, cache, appLogger)
	roadmapUseCase := roadmapUC.NewRoadmapUseCase(roadmapRepo, cache, generator, cfg.Redis.CacheTTL, appLogger)
	progressUseCase := progressUC.NewProgressUseCase(progressRepo, roadmapRepo, appLogger)
	certificateUseCase := certificateUC.NewCertificateUseCase(certificateUC.Deps{
		Tokens:    tokenRepo,
		Progress:  progressRepo,
		Roadmaps:  roadmapRepo,
		Students:  studentRepo,
		Publisher: kafkaClient,
		Reports:   report.NewExcelReportBuilder(),
		Uploader:  uploader,
		PublicURL: cfg.App.PublicURL,
	}, appLogger)
	interviewUseCase := interviewUC.NewInterviewUseCase(interviewRepo, kafkaClient, generator, appLogger)
	chatUseCase := chatUC.NewChatUseCase(chatRepo, generator, appLogger)
	dashboardUseCase := dashboardUC.NewDashboardUseCase(dashboardUC.Deps{
		Students:  studentRepo,
		Profiles:  profileRepo,
		Progress:  progressRepo,
		Roadmaps:  roadmapRepo,
		Tokens:    tokenRepo,
		Generator: generator,
	}, appLogger)
	marketUseCase := marketUC.NewMarketUseCase(cache, generator, appLogger)
	stateUseCase := stateUC.NewStateUseCase(stateRepo, profileRepo, progressRepo, tokenRepo, appLogger)
	skillUseCase := skillUC.NewSkillUseCase(skillRepo, kafkaClient, generator, appLogger)
	learningUseCase := learningUC.NewLearningUseCase(learningRepo, skillRepo, kafkaClient, generator, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth:       httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, appLogger),
		Onboarding: httpAdapter.NewOnboardingHandler(onboardingUseCase, appLogger),
		Profile:    httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Career:     httpAdapter.NewCareerHandler(careerUseCase, appLogger),
		Roadmap:    httpAdapter.NewRoadmapHandler(roadmapUseCase, appLogger),
		Progress:   httpAdapter.NewProgressHandler(progressUseCase, appLogger),
		Token:      httpAdapter.NewTokenHandler(certificateUseCase, appLogger),
		Interview:  httpAdapter.NewInterviewHandler(interviewUseCase, appLogger),
		Chat:       httpAdapter.NewChatHandler(chatUseCase, appLogger),
		Dashboard:  httpAdapter.NewDashboardHandler(dashboardUseCase, appLogger),
		Market:     httpAdapter.NewMarketHandler(marketUseCase, appLogger),
		State:      httpAdapter.NewStateHandler(stateUseCase, appLogger),
		Skill:      httpAdapter.NewSkillHandler(skillUseCase, appLogger),
		Learning:   httpAdapter.NewLearningHandler(learningUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, jwtSvc, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
