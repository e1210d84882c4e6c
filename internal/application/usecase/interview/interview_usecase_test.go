package interview

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/educursus/internal/application/usecase/usecasetest"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/internal/domain/interview"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

func TestList(t *testing.T) {
	uc := NewInterviewUseCase(usecasetest.NewInterviewRepo(), &usecasetest.Publisher{}, &usecasetest.Generator{}, logger.NewNopLogger())

	list := uc.ExecuteList()

	require.Len(t, list, 3)
	assert.Equal(t, "data_analyst", list[0].ID)
	assert.Equal(t, 3, list[0].QuestionCount)
}

func TestInterview_FullRunAwardsBadge(t *testing.T) {
	ctx := context.Background()
	pub := &usecasetest.Publisher{}
	published := make(chan gamification.Event, 1)
	pub.On("PublishGamificationEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { published <- args.Get(1).(gamification.Event) }).
		Return(nil)
	uc := NewInterviewUseCase(usecasetest.NewInterviewRepo(), pub, &usecasetest.Generator{}, logger.NewNopLogger())
	student := uuid.New()

	start, err := uc.ExecuteStart(ctx, StartInput{StudentID: student, PathID: "ml_engineer"})
	require.NoError(t, err)
	require.NotNil(t, start.Question)
	assert.Empty(t, start.Question.ExpectedKeywords)
	assert.Equal(t, 2, start.Total)

	id := start.Session.ID
	mid, err := uc.ExecuteAnswer(ctx, AnswerInput{StudentID: student, SessionID: id, Answer: "Overfitting vs underfitting: use validation data, check generalization, balance bias and variance."})
	require.NoError(t, err)
	assert.Nil(t, mid.Session.Result)
	assert.Contains(t, mid.Question.Question, "deploy")

	done, err := uc.ExecuteAnswer(ctx, AnswerInput{StudentID: student, SessionID: id, Answer: "Deployment with MLOps: monitoring, scaling and versioning."})
	require.NoError(t, err)
	assert.Nil(t, done.Question)
	require.NotNil(t, done.Session.Result)
	assert.Equal(t, 100, done.Session.Result.Score)
	assert.Equal(t, "ml_engineer Interview Master", done.Session.Result.Badge)

	select {
	case e := <-published:
		assert.Equal(t, gamification.EventInterviewCompleted, e.Type)
		assert.Equal(t, 100, e.Score)
		assert.Equal(t, 150, e.XP())
	case <-time.After(time.Second):
		t.Fatal("event not published")
	}

	_, err = uc.ExecuteAnswer(ctx, AnswerInput{StudentID: student, SessionID: id, Answer: "again"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	got, err := uc.ExecuteGet(ctx, GetInput{StudentID: student, SessionID: id})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Session.Result.Score)
}

func TestInterview_Errors(t *testing.T) {
	ctx := context.Background()
	uc := NewInterviewUseCase(usecasetest.NewInterviewRepo(), &usecasetest.Publisher{}, &usecasetest.Generator{}, logger.NewNopLogger())
	student := uuid.New()

	_, err := uc.ExecuteStart(ctx, StartInput{StudentID: student, PathID: "astronaut"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	start, err := uc.ExecuteStart(ctx, StartInput{StudentID: student, PathID: "data_analyst"})
	require.NoError(t, err)

	_, err = uc.ExecuteAnswer(ctx, AnswerInput{StudentID: student, SessionID: start.Session.ID, Answer: "   "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.ExecuteGet(ctx, GetInput{StudentID: uuid.New(), SessionID: start.Session.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGenerateQuestions(t *testing.T) {
	gen := &usecasetest.Generator{Text: `{"questions":[{"question":"What is a JOIN?","type":"technical","category":"sql","difficulty":"junior","expected_answer":"combining tables","tips":"mention types"}]}`}
	uc := NewInterviewUseCase(usecasetest.NewInterviewRepo(), &usecasetest.Publisher{}, gen, logger.NewNopLogger())

	out, err := uc.ExecuteGenerateQuestions(context.Background(), QuestionsInput{CareerPath: "data_analyst", Level: "junior", Count: 50})

	require.NoError(t, err)
	assert.False(t, out.Fallback)
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "What is a JOIN?", out.Questions[0].Question)
	assert.Contains(t, gen.Prompts[0], "Generate 10 interview questions for data_analyst")
}

func TestGenerateQuestions_Fallback(t *testing.T) {
	uc := NewInterviewUseCase(usecasetest.NewInterviewRepo(), &usecasetest.Publisher{}, usecasetest.FailingGenerator(), logger.NewNopLogger())

	out, err := uc.ExecuteGenerateQuestions(context.Background(), QuestionsInput{CareerPath: "ml_engineer"})

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	iv, ok := interview.Find("ml_engineer")
	require.True(t, ok)
	require.Len(t, out.Questions, len(iv.Questions))
	assert.Equal(t, iv.Questions[0].Question, out.Questions[0].Question)
	assert.Equal(t, iv.Questions[0].SampleAnswer, out.Questions[0].ExpectedAnswer)
	assert.Equal(t, "intermediate", out.Questions[0].Difficulty)
}

func TestGenerateQuestions_FallbackForUnknownPath(t *testing.T) {
	uc := NewInterviewUseCase(usecasetest.NewInterviewRepo(), &usecasetest.Publisher{}, usecasetest.FailingGenerator(), logger.NewNopLogger())

	out, err := uc.ExecuteGenerateQuestions(context.Background(), QuestionsInput{CareerPath: "Game Designer", Level: "junior"})

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "Tell me about your experience with Game Designer", out.Questions[0].Question)
	assert.Equal(t, "junior", out.Questions[0].Difficulty)
}
