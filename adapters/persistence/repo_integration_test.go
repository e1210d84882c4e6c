package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/educursus/internal/domain/career"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/learning"
	"github.com/khoahotran/educursus/internal/domain/profile"
	"github.com/khoahotran/educursus/internal/domain/progress"
	"github.com/khoahotran/educursus/internal/domain/roadmap"
	"github.com/khoahotran/educursus/internal/domain/skill"
	"github.com/khoahotran/educursus/internal/domain/state"
	"github.com/khoahotran/educursus/internal/domain/student"
	"github.com/khoahotran/educursus/internal/domain/token"
	"github.com/khoahotran/educursus/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	studentRepo student.Repository
	testStudent *student.Student
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"pgvector/pgvector:pg16",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.studentRepo = NewPostgresStudentRepo(pool)
}

func (s *RepoIntegrationTestSuite) SetupTest() {
	s.testStudent = student.NewStudent(uuid.NewString()+"@example.com", "Asha", "hashed")
	s.Require().NoError(s.studentRepo.Save(context.Background(), s.testStudent))
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_Student_FindAndDuplicate() {
	ctx := context.Background()

	found, err := s.studentRepo.FindByEmail(ctx, "  "+s.testStudent.Email)
	s.Require().NoError(err)
	s.Equal(s.testStudent.ID, found.ID)
	s.Equal(gamification.LevelBeginner, found.Level)
	s.Empty(found.Badges)

	dup := student.NewStudent(s.testStudent.Email, "Other", "x")
	s.ErrorIs(s.studentRepo.Save(ctx, dup), student.ErrEmailTaken)

	_, err = s.studentRepo.FindByID(ctx, uuid.New())
	s.ErrorIs(err, student.ErrStudentNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Profile_SaveReplaces() {
	ctx := context.Background()
	repo := NewPostgresProfileRepo(s.dbPool, logger.NewNopLogger())

	_, err := repo.GetByStudentID(ctx, s.testStudent.ID)
	s.ErrorIs(err, profile.ErrProfileNotFound)

	p := &profile.Profile{Name: "Asha", Age: 17, Interests: []string{"Design", "Physics"}}
	s.Require().NoError(repo.Save(ctx, s.testStudent.ID, p))
	s.Require().NoError(repo.Save(ctx, s.testStudent.ID, &profile.Profile{Name: "Asha K", Age: 18}))

	got, err := repo.GetByStudentID(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal("Asha K", got.Name)
	s.Empty(got.Interests)
}

func (s *RepoIntegrationTestSuite) Test_Progress_RoundTrip() {
	ctx := context.Background()
	repo := NewPostgresProgressRepo(s.dbPool)

	empty, err := repo.Get(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Empty(empty)

	s.Require().NoError(repo.Save(ctx, s.testStudent.ID, progress.Progress{"SQL Databases": true, "Linear Algebra": false}))
	got, err := repo.Get(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal(progress.Progress{"SQL Databases": true, "Linear Algebra": false}, got)
}

func (s *RepoIntegrationTestSuite) Test_Tokens_AppendKeepsOrderAndDuplicates() {
	ctx := context.Background()
	repo := NewPostgresTokenRepo(s.dbPool)

	first := token.Token{Project: "Churn Model", Phase: "Machine Learning", Date: "3/7/2025"}
	second := token.Token{Project: "Sales Dashboard", Phase: "Core Skills", Date: "3/8/2025"}
	s.Require().NoError(repo.Append(ctx, s.testStudent.ID, first))
	s.Require().NoError(repo.Append(ctx, s.testStudent.ID, second))
	s.Require().NoError(repo.Append(ctx, s.testStudent.ID, first))

	got, err := repo.List(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal([]token.Token{first, second, first}, got)

	s.Require().NoError(repo.ReplaceAll(ctx, s.testStudent.ID, []token.Token{second}))
	got, err = repo.List(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal([]token.Token{second}, got)
}

func (s *RepoIntegrationTestSuite) Test_Roadmaps() {
	ctx := context.Background()
	repo := NewPostgresRoadmapRepo(s.dbPool)

	rm := &roadmap.Roadmap{
		StudentID: s.testStudent.ID,
		CareerID:  "data-scientist",
		Title:     "AI & Data Scientist",
		Phases:    roadmap.MockPhases(),
		Fallback:  true,
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(repo.Save(ctx, rm))

	got, err := repo.Get(ctx, s.testStudent.ID, "data-scientist")
	s.Require().NoError(err)
	s.Equal(rm.Phases, got.Phases)
	s.True(got.Fallback)

	list, err := repo.ListByStudent(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Len(list, 1)

	s.Require().NoError(repo.DeleteByStudent(ctx, s.testStudent.ID))
	_, err = repo.Get(ctx, s.testStudent.ID, "data-scientist")
	s.ErrorIs(err, roadmap.ErrRoadmapNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Gamification_AppliesOnce() {
	ctx := context.Background()
	repo := NewPostgresGamificationRepo(s.dbPool)

	e := gamification.NewInterviewCompleted(s.testStudent.ID, "ml_engineer", 90, "ml_engineer Interview Master")

	standing, applied, err := repo.ApplyEvent(ctx, e)
	s.Require().NoError(err)
	s.True(applied)
	s.Equal(140, standing.XP)

	_, applied, err = repo.ApplyEvent(ctx, e)
	s.Require().NoError(err)
	s.False(applied)

	got, err := s.studentRepo.FindByID(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal(140, got.XP)
	s.Equal([]string{"ml_engineer Interview Master"}, got.Badges)
}

func (s *RepoIntegrationTestSuite) Test_State_Replace() {
	ctx := context.Background()
	repo := NewPostgresStateRepo(s.dbPool)
	tokens := NewPostgresTokenRepo(s.dbPool)

	s.Require().NoError(tokens.Append(ctx, s.testStudent.ID, token.Token{Project: "old", Date: "1/1/2025"}))

	doc := &state.Document{
		Profile:  &profile.Profile{Name: "Asha", Age: 17},
		Progress: progress.Progress{"Python Programming": true},
		Tokens:   []token.Token{{Project: "new", Phase: "Foundations", Date: "2/1/2025"}},
	}
	s.Require().NoError(repo.Replace(ctx, s.testStudent.ID, doc))

	list, err := tokens.List(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal(doc.Tokens, list)

	prog, err := NewPostgresProgressRepo(s.dbPool).Get(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.True(prog["Python Programming"])
}

func (s *RepoIntegrationTestSuite) Test_Careers_SearchByEmbedding() {
	ctx := context.Background()
	repo := NewPostgresCareerRepo(s.dbPool)

	vec := func(hot int) pgvector.Vector {
		v := make([]float32, 768)
		v[hot] = 1
		return pgvector.NewVector(v)
	}
	for i, c := range career.MockCareers {
		s.Require().NoError(repo.UpsertEmbedding(ctx, c, vec(i)))
	}

	ranked, err := repo.SearchByEmbedding(ctx, vec(1), 2)
	s.Require().NoError(err)
	s.Require().Len(ranked, 2)
	s.Equal("ml-engineer", ranked[0].ID)
	s.InDelta(1.0, ranked[0].Score, 1e-6)
}

func (s *RepoIntegrationTestSuite) Test_Skills_LevelsAndResults() {
	ctx := context.Background()
	repo := NewPostgresSkillRepo(s.dbPool)

	empty, err := repo.GetLevels(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Empty(empty)

	s.Require().NoError(repo.SaveLevels(ctx, s.testStudent.ID, skill.Levels{"python": 4, "sql": 2}))
	s.Require().NoError(repo.SaveLevels(ctx, s.testStudent.ID, skill.Levels{"python": 5}))
	got, err := repo.GetLevels(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal(skill.Levels{"python": 5}, got)

	res := &skill.Result{
		ID:           uuid.New(),
		StudentID:    s.testStudent.ID,
		AssessmentID: "python_basics",
		Score:        80,
		Passed:       true,
		XP:           80,
		Badge:        "Python Basics Challenge Master",
		Feedback:     []string{"Question 2: Consider including more details about base64"},
		Levels:       skill.Levels{"python": 6},
		CompletedAt:  time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(repo.SaveResult(ctx, res))

	got, err = repo.GetLevels(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Equal(skill.Levels{"python": 6}, got)

	results, err := repo.ListResults(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(res.ID, results[0].ID)
	s.Equal(res.Feedback, results[0].Feedback)
	s.Equal(res.Levels, results[0].Levels)
	s.True(res.CompletedAt.Equal(results[0].CompletedAt))
}

func (s *RepoIntegrationTestSuite) Test_Learning_CompleteOnce() {
	ctx := context.Background()
	repo := NewPostgresLearningRepo(s.dbPool)
	at := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(repo.Complete(ctx, s.testStudent.ID, "web_app", at))
	s.ErrorIs(repo.Complete(ctx, s.testStudent.ID, "web_app", at), learning.ErrAlreadyCompleted)
	s.Require().NoError(repo.Complete(ctx, s.testStudent.ID, "python_basics", at.Add(time.Hour)))

	got, err := repo.ListCompleted(ctx, s.testStudent.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("web_app", got[0].ProjectID)
	s.Equal("python_basics", got[1].ProjectID)
}
