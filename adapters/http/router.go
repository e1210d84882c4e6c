package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/educursus/pkg/auth"
	"github.com/khoahotran/educursus/pkg/logger"
)

type Handlers struct {
	Auth       *AuthHandler
	Onboarding *OnboardingHandler
	Profile    *ProfileHandler
	Career     *CareerHandler
	Roadmap    *RoadmapHandler
	Progress   *ProgressHandler
	Token      *TokenHandler
	Interview  *InterviewHandler
	Chat       *ChatHandler
	Dashboard  *DashboardHandler
	Market     *MarketHandler
	State      *StateHandler
	Skill      *SkillHandler
	Learning   *LearningHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc, log)

	api := router.Group("/api")
	{
		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.POST("/auth/register", h.Auth.Register)
			public.POST("/auth/login", h.Auth.Login)
			public.GET("/onboarding/questions", h.Onboarding.Questions)
			public.GET("/careers/paths", h.Career.ListPaths)
			public.GET("/careers/paths/:id", h.Career.GetPath)
			public.GET("/careers/paths/:id/projects", h.Learning.PathProjects)
			public.GET("/assessments", h.Skill.ListAssessments)
			public.GET("/market/trends", h.Market.Trends)
			public.GET("/feeds/:student/tokens", h.Token.Feed)
		}

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/onboarding/session", h.Onboarding.StartSession)
			private.POST("/onboarding/session/answer", h.Onboarding.Answer)

			private.GET("/profile", h.Profile.GetProfile)
			private.PUT("/profile", h.Profile.UpdateProfile)
			private.POST("/profile/resume", h.Profile.ImportResume)

			private.POST("/careers/suggestions", h.Career.Suggest)
			private.GET("/careers/match", h.Career.Match)
			private.POST("/careers/paths/:id/gap", h.Career.SkillGap)
			private.POST("/simulation/:pathId", h.Career.Simulate)

			private.GET("/roadmaps", h.Roadmap.ListRoadmaps)
			private.GET("/roadmaps/:careerId", h.Roadmap.GetRoadmap)
			private.POST("/roadmaps/:careerId/mini-project", h.Roadmap.MiniProject)

			private.GET("/progress", h.Progress.GetProgress)
			private.POST("/progress/toggle", h.Progress.Toggle)

			private.GET("/tokens", h.Token.ListTokens)
			private.POST("/tokens", h.Token.AddToken)
			private.POST("/tokens/report", h.Token.ExportReport)

			interviews := private.Group("/interviews")
			{
				interviews.GET("", h.Interview.ListInterviews)
				interviews.POST("/:pathId", h.Interview.StartInterview)
				interviews.GET("/session/:id", h.Interview.GetSession)
				interviews.POST("/session/:id/answer", h.Interview.Answer)
			}
			private.GET("/ai/interview-questions/:path", h.Interview.GenerateQuestions)

			private.GET("/skills", h.Skill.GetSkills)
			private.PUT("/skills", h.Skill.UpdateSkills)
			private.GET("/assessments/results", h.Skill.ListResults)
			private.POST("/assessments/:id/submit", h.Skill.SubmitAssessment)
			private.GET("/ai/assessment-questions/:skill", h.Skill.GenerateQuestions)

			private.GET("/learning-projects", h.Learning.ListProjects)
			private.POST("/learning-projects/:id/complete", h.Learning.CompleteProject)
			private.POST("/ai/learning-path", h.Learning.LearningPath)

			private.GET("/chat", h.Chat.History)
			private.POST("/chat", h.Chat.Send)

			private.GET("/dashboard", h.Dashboard.Summary)
			private.POST("/dashboard/analysis", h.Dashboard.Analyze)

			private.GET("/market/insights/:path", h.Market.Insights)

			private.GET("/state", h.State.Export)
			private.PUT("/state", h.State.Import)
		}
	}

	return router
}
