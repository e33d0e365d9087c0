package roleplay

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nvelop/pitchdrill/internal/openai"
)

const feedbackSystemPrompt = "You are a sales coaching expert. Analyze this SDR cold call practice " +
	"session and provide brief, actionable feedback in 3-5 bullet points " +
	"covering: opening effectiveness, objection handling, discovery questions, " +
	"and overall impression. Be specific and constructive."

// FeedbackFallback is stored instead of a summary when synthesis fails.
// Ending a session must never be blocked by the coaching step.
const FeedbackFallback = "Feedback generation failed. Please try again."

var feedbackParams = openai.Params{
	Temperature: 0.3,
	MaxTokens:   500,
}

// Synthesizer turns a completed transcript into a coaching note.
type Synthesizer struct {
	llm    Completer
	logger *slog.Logger
}

func NewSynthesizer(llm Completer, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{llm: llm, logger: logger}
}

// Synthesize renders the transcript as SDR/Prospect lines and asks the
// model for coaching feedback. On failure it returns FeedbackFallback
// rather than an error. Callers must not invoke it for empty transcripts.
func (s *Synthesizer) Synthesize(ctx context.Context, turns []Turn) string {
	messages := []openai.Message{
		{Role: "system", Content: feedbackSystemPrompt},
		{Role: "user", Content: RenderTranscript(turns)},
	}

	feedback, err := s.llm.Complete(ctx, messages, feedbackParams)
	if err != nil {
		s.logger.Error("feedback synthesis failed", "error", err, "turns", len(turns))
		return FeedbackFallback
	}
	return feedback
}

// RenderTranscript formats turns as alternating "SDR:"/"Prospect:" lines
// in chronological order.
func RenderTranscript(turns []Turn) string {
	lines := make([]string, len(turns))
	for i, turn := range turns {
		speaker := "Prospect"
		if turn.Role == RoleUser {
			speaker = "SDR"
		}
		lines[i] = speaker + ": " + turn.Content
	}
	return strings.Join(lines, "\n")
}
