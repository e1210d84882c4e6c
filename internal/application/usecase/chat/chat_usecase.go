package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/prompt"
	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/domain/chat"
	"github.com/khoahotran/educursus/pkg/apperror"
	"github.com/khoahotran/educursus/pkg/logger"
)

var tracer = otel.Tracer("chat_usecase")

const (
	// promptWindow is how many earlier messages accompany a question.
	promptWindow       = 6
	defaultHistorySize = 50
)

type ChatUseCase struct {
	chatRepo  chat.Repository
	generator service.TextGenerator
	logger    logger.Logger
	now       func() time.Time
}

func NewChatUseCase(repo chat.Repository, gen service.TextGenerator, log logger.Logger) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:  repo,
		generator: gen,
		logger:    log,
		now:       time.Now,
	}
}

type SendInput struct {
	StudentID uuid.UUID
	Message   string
}

type SendOutput struct {
	Reply    chat.Message `json:"reply"`
	Fallback bool         `json:"fallback"`
}

// ExecuteSend answers one message as "Big Brother". A failed generation is answered with
// the fixed apology and still recorded.
func (uc *ChatUseCase) ExecuteSend(ctx context.Context, input SendInput) (*SendOutput, error) {
	ctx, span := tracer.Start(ctx, "Send")
	defer span.End()

	question := strings.TrimSpace(input.Message)
	if question == "" {
		return nil, apperror.NewInvalidInput(chat.ErrEmptyMessage.Error(), chat.ErrEmptyMessage)
	}
	l := uc.logger.With(zap.String("student_id", input.StudentID.String()))

	history, err := uc.chatRepo.History(ctx, input.StudentID, promptWindow)
	if err != nil {
		l.Warn("Failed to load chat history for prompt", zap.Error(err))
		history = nil
	}

	text, err := prompt.Render(prompt.Chat, map[string]any{
		"History":  history,
		"Question": question,
	})
	if err != nil {
		return nil, apperror.NewInternal("failed to build chat prompt", err)
	}

	out := &SendOutput{}
	reply, err := uc.generator.Generate(ctx, text, service.GenerateOptions{})
	if err != nil {
		span.RecordError(err)
		l.Warn("Chat generation failed, sending fallback reply", zap.Error(err))
		reply = chat.FallbackReply
		out.Fallback = true
	}

	now := uc.now().UTC()
	userMsg := chat.Message{Sender: chat.RoleUser, Text: question, CreatedAt: now}
	out.Reply = chat.Message{Sender: chat.RoleAI, Text: strings.TrimSpace(reply), CreatedAt: now}
	if err := uc.chatRepo.Append(ctx, input.StudentID, userMsg, out.Reply); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to save chat messages", err)
	}
	return out, nil
}

// ExecuteHistory returns the conversation oldest first, always opening with the greeting.
func (uc *ChatUseCase) ExecuteHistory(ctx context.Context, studentID uuid.UUID, limit int) ([]chat.Message, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	if limit <= 0 {
		limit = defaultHistorySize
	}
	msgs, err := uc.chatRepo.History(ctx, studentID, limit)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load chat history", err)
	}
	return append([]chat.Message{chat.GreetingMessage()}, msgs...), nil
}
