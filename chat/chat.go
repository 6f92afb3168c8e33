package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/surf-club-server/internal/errors"
)

var (
	ErrEmptyMessage = apperrors.New(apperrors.KindValidation, "Message is required")
	ErrNoModel      = apperrors.New(apperrors.KindUnavailable, "Chat is not available")
	ErrFailed       = apperrors.New(apperrors.KindInternal, "Failed to send message")
)

// Model turns a prompt into generated text.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const persona = `Your name is Kelly, a friendly and knowledgeable assistant who specializes in mental coaching, surfing expertise,
and promoting a healthy lifestyle. You are an expert in surfing techniques, wave forecasts (especially in Israel),
and maintaining physical and mental well-being.
Provide clear, concise, and actionable answers to user questions.
Avoid asking unnecessary follow-up questions unless essential for understanding the user's request.
Use appropriate emojis sparingly to make your responses more engaging, friendly, and motivational.
For example, use 🌊 for surfing, 🧘‍♂️ for mental health, 🍎 for healthy eating, and 💪 for fitness.
If a query is unrelated to your expertise, politely redirect the conversation to topics like surfing, mental health,
or a healthy lifestyle. Always maintain an encouraging and motivational tone.`

// Prompt wraps a user message in the assistant persona.
func Prompt(message string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nUser: ")
	b.WriteString(message)
	b.WriteString("\nAssistant:")
	return b.String()
}

type Service struct {
	model Model
}

// NewService accepts a nil model; Send then fails with ErrNoModel.
func NewService(model Model) *Service {
	return &Service{model: model}
}

func (s *Service) Enabled() bool {
	return s.model != nil
}

func (s *Service) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if s.model == nil {
		return "", ErrNoModel
	}

	reply, err := s.model.Generate(ctx, Prompt(message))
	if err != nil {
		log.Error().Err(err).Msg("chat model failed")
		return "", apperrors.Wrapf(ErrFailed, "chat model: %v", err)
	}
	return reply, nil
}
