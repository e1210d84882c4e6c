package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/educursus/adapters/persistence"
	authUC "github.com/khoahotran/educursus/internal/application/usecase/auth"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/pkg/auth"
	"github.com/khoahotran/educursus/pkg/logger"
)

// AuthE2ETestSuite runs against the database configured for the environment.
type AuthE2ETestSuite struct {
	suite.Suite
	Router      *gin.Engine
	dbPool      *pgxpool.Pool
	testStudent *student.Student
	testPass    string
}

func (s *AuthE2ETestSuite) SetupSuite() {

	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	s.dbPool, err = pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}

	appLogger := logger.NewZapLogger("development")
	studentRepo := persistence.NewPostgresStudentRepo(s.dbPool)

	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	s.testStudent = student.NewStudent("e2e_"+uuid.NewString()[:8]+"@example.com", "E2E Student", hash)
	if err := studentRepo.Save(context.Background(), s.testStudent); err != nil {
		s.T().Fatalf("E2E test failed to seed student: %v", err)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	loginUseCase := authUC.NewLoginUseCase(studentRepo, jwtSvc, appLogger)
	registerUseCase := authUC.NewRegisterUseCase(studentRepo, jwtSvc, appLogger)
	authHandler := NewAuthHandler(registerUseCase, loginUseCase, appLogger)
	authMiddleware := AuthMiddleware(jwtSvc, appLogger)
	errorMiddleware := ErrorMiddleware(appLogger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/health-auth", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "OK"})
			})
		}
	}

	s.Router = router
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool == nil {
		return
	}
	s.dbPool.Exec(context.Background(), `DELETE FROM students WHERE id = $1`, s.testStudent.ID)
	s.dbPool.Close()
}

func TestAuthE2E(t *testing.T) {

	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {

	bodyBad, _ := json.Marshal(gin.H{"email": s.testStudent.Email, "password": "wrongpassword"})
	reqBad := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyBad))
	reqBad.Header.Set("Content-Type", "application/json")

	rrBad := httptest.NewRecorder()
	s.Router.ServeHTTP(rrBad, reqBad)

	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	bodyGood, _ := json.Marshal(gin.H{"email": s.testStudent.Email, "password": s.testPass})
	reqGood := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyGood))
	reqGood.Header.Set("Content-Type", "application/json")

	rrGood := httptest.NewRecorder()
	s.Router.ServeHTTP(rrGood, reqGood)

	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse AuthResponse
	json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse.AccessToken
	assert.NotEmpty(s.T(), accessToken)
	assert.Equal(s.T(), s.testStudent.ID.String(), loginResponse.Student.ID)

	reqAuth := httptest.NewRequest(http.MethodGet, "/api/health-auth", nil)
	reqAuth.Header.Set("Authorization", "Bearer "+accessToken)

	rrAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrAuth, reqAuth)

	assert.Equal(s.T(), http.StatusOK, rrAuth.Code)

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/health-auth", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)

	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
