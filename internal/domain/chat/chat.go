package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

const (
	Greeting      = "Hey there! I'm your Big Brother AI. Ask me anything about careers, skills, or tech. What's on your mind? 🤔"
	FallbackReply = "Oops, my circuits are a bit fried right now. Try asking me again in a moment."
)

var ErrEmptyMessage = errors.New("message must not be empty")

type Message struct {
	Sender    Role      `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func GreetingMessage() Message {
	return Message{Sender: RoleAI, Text: Greeting}
}

type Repository interface {
	// History returns messages oldest first.
	History(ctx context.Context, studentID uuid.UUID, limit int) ([]Message, error)
	Append(ctx context.Context, studentID uuid.UUID, msgs ...Message) error
}
