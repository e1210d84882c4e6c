package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/educursus/adapters/document"
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
	"github.com/khoahotran/educursus/internal/application/usecase/usecasetest"
	"github.com/khoahotran/educursus/pkg/auth"
	"github.com/khoahotran/educursus/pkg/logger"
)

// RouterTestSuite drives the full router over in-memory repositories with a generator
// that always fails, so every AI feature serves its fallback.
type RouterTestSuite struct {
	suite.Suite
	Router *gin.Engine
	token  string
	id     string
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	gen := usecasetest.FailingGenerator()
	cache := usecasetest.NewCache()

	students := usecasetest.NewStudentRepo()
	profiles := usecasetest.NewProfileRepo()
	progressRepo := usecasetest.NewProgressRepo()
	tokens := usecasetest.NewTokenRepo()
	roadmaps := usecasetest.NewRoadmapRepo()
	skills := usecasetest.NewSkillRepo()
	stateRepo := &usecasetest.StateRepo{Profiles: profiles, Progress: progressRepo, Tokens: tokens}

	pub := &usecasetest.Publisher{}
	pub.On("PublishGamificationEvent", mock.Anything, mock.Anything).Return(nil)

	jwtSvc := auth.NewJWTService("router-test-secret", time.Hour)

	h := Handlers{
		Auth: NewAuthHandler(
			authUC.NewRegisterUseCase(students, jwtSvc, log),
			authUC.NewLoginUseCase(students, jwtSvc, log),
			log,
		),
		Onboarding: NewOnboardingHandler(onboardingUC.NewOnboardingUseCase(usecasetest.NewSessionStore(), profiles, log), log),
		Profile:    NewProfileHandler(profileUC.NewProfileUseCase(profiles, document.NewTextExtractor(), gen, log), log),
		Career: NewCareerHandler(careerUC.NewCareerUseCase(
			profiles, roadmaps, usecasetest.NewCareerRepo(), skills, gen, &usecasetest.Embedder{Keywords: []string{"data"}}, cache, log,
		), log),
		Roadmap:  NewRoadmapHandler(roadmapUC.NewRoadmapUseCase(roadmaps, cache, gen, time.Hour, log), log),
		Progress: NewProgressHandler(progressUC.NewProgressUseCase(progressRepo, roadmaps, log), log),
		Token: NewTokenHandler(certificateUC.NewCertificateUseCase(certificateUC.Deps{
			Tokens:    tokens,
			Progress:  progressRepo,
			Roadmaps:  roadmaps,
			Students:  students,
			Publisher: pub,
			Reports:   report.NewExcelReportBuilder(),
			Uploader:  usecasetest.NewUploader(),
			PublicURL: "http://localhost:8080",
		}, log), log),
		Interview: NewInterviewHandler(interviewUC.NewInterviewUseCase(usecasetest.NewInterviewRepo(), pub, gen, log), log),
		Chat:      NewChatHandler(chatUC.NewChatUseCase(usecasetest.NewChatRepo(), gen, log), log),
		Dashboard: NewDashboardHandler(dashboardUC.NewDashboardUseCase(dashboardUC.Deps{
			Students:  students,
			Profiles:  profiles,
			Progress:  progressRepo,
			Roadmaps:  roadmaps,
			Tokens:    tokens,
			Generator: gen,
		}, log), log),
		Market:   NewMarketHandler(marketUC.NewMarketUseCase(cache, gen, log), log),
		State:    NewStateHandler(stateUC.NewStateUseCase(stateRepo, profiles, progressRepo, tokens, log), log),
		Skill:    NewSkillHandler(skillUC.NewSkillUseCase(skills, pub, gen, log), log),
		Learning: NewLearningHandler(learningUC.NewLearningUseCase(usecasetest.NewLearningRepo(), skills, pub, gen, log), log),
	}
	s.Router = NewRouter(h, jwtSvc, log)

	rr := s.do(http.MethodPost, "/api/auth/register", gin.H{"email": "lina@example.com", "password": "password123", "name": "Lina"}, "")
	require.Equal(s.T(), http.StatusCreated, rr.Code, rr.Body.String())
	var resp AuthResponse
	require.NoError(s.T(), json.Unmarshal(rr.Body.Bytes(), &resp))
	s.token = resp.AccessToken
	s.id = resp.Student.ID
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](s *RouterTestSuite, rr *httptest.ResponseRecorder) T {
	var v T
	require.NoError(s.T(), json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (s *RouterTestSuite) Test_Health() {
	rr := s.do(http.MethodGet, "/api/health", nil, "")
	assert.Equal(s.T(), http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) Test_Auth() {
	rr := s.do(http.MethodGet, "/api/profile", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodGet, "/api/profile", nil, "not-a-jwt")
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodPost, "/api/auth/register", gin.H{"email": "lina@example.com", "password": "password123", "name": "Lina"}, "")
	assert.Equal(s.T(), http.StatusConflict, rr.Code)

	rr = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "lina@example.com", "password": "wrong-password"}, "")
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "lina@example.com", "password": "password123"}, "")
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.NotEmpty(s.T(), decode[AuthResponse](s, rr).AccessToken)
}

func (s *RouterTestSuite) Test_OnboardingFlow() {
	rr := s.do(http.MethodGet, "/api/onboarding/questions", nil, "")
	require.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/profile", nil, s.token)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodPost, "/api/onboarding/session", nil, s.token)
	require.Equal(s.T(), http.StatusCreated, rr.Code)
	assert.Equal(s.T(), "name", decode[OnboardingSessionDTO](s, rr).Question.Key)

	answers := []gin.H{
		{"text": "Lina"},
		{"text": "18"},
		{"text": "Science"},
		{"choices": []string{"Mathematics", "Computer Science"}},
		{"text": "Just getting started"},
		{"text": "A bit of both"},
		{"text": "Logically & Step-by-step"},
		{"text": "By Doing (Practical)"},
		{"text": "Fast-paced Startup"},
		{"choices": []string{}},
		{"text": "Ship a product used by millions"},
	}
	var last OnboardingSessionDTO
	for step, a := range answers {
		a["step"] = step
		rr = s.do(http.MethodPost, "/api/onboarding/session/answer", a, s.token)
		require.Equal(s.T(), http.StatusOK, rr.Code, "step %d: %s", step, rr.Body.String())
		last = decode[OnboardingSessionDTO](s, rr)
	}
	assert.True(s.T(), last.Completed)
	require.NotNil(s.T(), last.Profile)

	rr = s.do(http.MethodGet, "/api/profile", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"longTermGoal":"Ship a product used by millions"`)

	rr = s.do(http.MethodPost, "/api/careers/suggestions", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"fallback":true`)

	rr = s.do(http.MethodPost, "/api/dashboard/analysis", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "couldn't generate an analysis")
}

func (s *RouterTestSuite) Test_OnboardingAnswerWithoutSession() {
	rr := s.do(http.MethodPost, "/api/onboarding/session/answer", gin.H{"step": 0, "text": "Lina"}, s.token)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodPost, "/api/onboarding/session/answer", gin.H{"text": "Lina"}, s.token)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) Test_RoadmapProgressAndTokens() {
	rr := s.do(http.MethodGet, "/api/roadmaps/data-scientist", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Python Programming")

	rr = s.do(http.MethodPost, "/api/progress/toggle", gin.H{"skill": "Python Programming"}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	toggled := decode[progressUC.ToggleOutput](s, rr)
	assert.True(s.T(), toggled.Completed)
	assert.Equal(s.T(), 7, toggled.Percentage)

	rr = s.do(http.MethodPost, "/api/roadmaps/data-scientist/mini-project", gin.H{"phase": "Foundations"}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Project Generation Error")

	rr = s.do(http.MethodPost, "/api/tokens", gin.H{"project": "Titanic EDA", "phase": "Foundations"}, s.token)
	require.Equal(s.T(), http.StatusCreated, rr.Code)

	rr = s.do(http.MethodPost, "/api/tokens", gin.H{"phase": "Foundations"}, s.token)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodGet, "/api/tokens", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Titanic EDA")

	rr = s.do(http.MethodPost, "/api/tokens/report", nil, s.token)
	require.Equal(s.T(), http.StatusCreated, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "https://files.example.com/students/"+s.id+"/reports/")

	rr = s.do(http.MethodGet, "/api/feeds/"+s.id+"/tokens", nil, "")
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.True(s.T(), strings.HasPrefix(rr.Header().Get("Content-Type"), "application/rss+xml"))
	assert.Contains(s.T(), rr.Body.String(), "Titanic EDA")

	rr = s.do(http.MethodGet, "/api/dashboard", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	summary := decode[dashboardUC.SummaryOutput](s, rr)
	assert.Equal(s.T(), 1, summary.Tokens)
	assert.Equal(s.T(), 7, summary.Percentage)
}

func (s *RouterTestSuite) Test_Careers() {
	rr := s.do(http.MethodGet, "/api/careers/paths/unknown", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodPost, "/api/careers/paths/data_analyst/gap", gin.H{"current_skills": gin.H{"python": 11}}, s.token)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/simulation/data_analyst", gin.H{"part_time": true}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"learning_pace":"part_time"`)
}

func (s *RouterTestSuite) Test_ChatAndInterview() {
	rr := s.do(http.MethodPost, "/api/chat", gin.H{"message": "How do I start with SQL?"}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"fallback":true`)

	rr = s.do(http.MethodGet, "/api/chat", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "How do I start with SQL?")

	rr = s.do(http.MethodPost, "/api/interviews/nope", nil, s.token)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodPost, "/api/interviews/data_analyst", nil, s.token)
	require.Equal(s.T(), http.StatusCreated, rr.Code)
	out := decode[interviewUC.SessionOutput](s, rr)

	rr = s.do(http.MethodPost, "/api/interviews/session/"+out.Session.ID.String()+"/answer", gin.H{"answer": "I use pandas and SQL joins"}, s.token)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/interviews/session/not-a-uuid", nil, s.token)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) Test_State() {
	rr := s.do(http.MethodPut, "/api/state", `{"educursus-progress": {"SQL": "done"}}`, s.token)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPut, "/api/state", `{"educursus-progress": {"SQL Databases": true}, "educursus-tokens": []}`, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/state", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.JSONEq(s.T(), `{"educursus-profile": null, "educursus-progress": {"SQL Databases": true}, "educursus-tokens": []}`, rr.Body.String())
}

func (s *RouterTestSuite) Test_Market() {
	rr := s.do(http.MethodGet, "/api/market/trends", nil, "")
	require.Equal(s.T(), http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/market/insights/ml_engineer?location=Pune", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"location":"Pune"`)
}

func (s *RouterTestSuite) Test_SkillsAndAssessments() {
	rr := s.do(http.MethodGet, "/api/assessments", nil, "")
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.NotContains(s.T(), rr.Body.String(), "expected_keywords")

	rr = s.do(http.MethodPut, "/api/skills", gin.H{"current_skills": gin.H{"Python": 6, "sql": 2}}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(http.MethodPost, "/api/careers/paths/data_analyst/gap", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())
	gap := decode[map[string]any](s, rr)
	assert.Equal(s.T(), float64(6), gap["skill_gaps"].(map[string]any)["sql"])

	rr = s.do(http.MethodPost, "/api/assessments/python_basics/submit", gin.H{"answers": []string{
		"Group sales by product, total revenue per product, then the average per day",
		"It is base64; decode it, then crack the password hash behind the encryption",
	}}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())
	res := decode[map[string]any](s, rr)
	assert.Equal(s.T(), true, res["passed"])
	assert.Equal(s.T(), float64(7), res["current_skills"].(map[string]any)["python"])

	rr = s.do(http.MethodGet, "/api/skills", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.JSONEq(s.T(), `{"current_skills":{"python":7,"sql":2}}`, rr.Body.String())

	rr = s.do(http.MethodGet, "/api/assessments/results", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Python Basics Challenge Master")

	rr = s.do(http.MethodPost, "/api/assessments/unknown/submit", gin.H{"answers": []string{}}, s.token)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodGet, "/api/ai/assessment-questions/pandas", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "What is the primary use of pandas?")

	rr = s.do(http.MethodGet, "/api/skills", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *RouterTestSuite) Test_LearningProjects() {
	rr := s.do(http.MethodGet, "/api/careers/paths/data_analyst/projects", nil, "")
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), "Sales Data Analysis")

	rr = s.do(http.MethodPost, "/api/learning-projects/python_basics/complete", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())
	out := decode[map[string]any](s, rr)
	assert.Equal(s.T(), float64(200), out["xp"])
	assert.Equal(s.T(), "Python Beginner", out["badge"])

	rr = s.do(http.MethodPost, "/api/learning-projects/python_basics/complete", nil, s.token)
	assert.Equal(s.T(), http.StatusConflict, rr.Code)

	rr = s.do(http.MethodGet, "/api/learning-projects", nil, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), rr.Body.String(), `"project_id":"python_basics"`)

	rr = s.do(http.MethodPost, "/api/ai/learning-path", gin.H{"career_goal": "Data Analyst"}, s.token)
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())
	plan := decode[map[string]any](s, rr)
	assert.Equal(s.T(), true, plan["fallback"])
	assert.Equal(s.T(), "40 hours", plan["total_time"])

	rr = s.do(http.MethodPost, "/api/ai/learning-path", gin.H{}, s.token)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
}
