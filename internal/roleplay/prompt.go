package roleplay

import (
	"fmt"

	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/openai"
)

// maxHistoryTurns bounds how much transcript is replayed into the prompt.
// Older turns are silently dropped (sliding window, no summarization) so
// prompt size and cost stay flat regardless of conversation length.
const maxHistoryTurns = 40

const roleplaySystemPrompt = `You are roleplaying as %s, a %s.

PERSONALITY:
%s

SCENARIO CONTEXT:
The caller is a Sales Development Representative (SDR) from %s.
They are cold-calling you. The product targets the %s industry
for %s-sized companies in %s.

BEHAVIORAL RULES:
1. Stay fully in character at ALL times. Never break character.
2. React naturally to what the SDR says.
3. You have a busy schedule. You did NOT expect this call.
4. Introduce realistic objections based on your persona.
5. Keep responses concise (1-4 sentences, like a real phone call).
6. Do NOT volunteer information the SDR hasn't asked about.
7. If the SDR handles objections well, gradually become more receptive.
8. If the SDR is pushy or robotic, become more resistant.
9. Ask clarifying questions a real %s would ask.
10. Never reference that this is a roleplay or simulation.`

// BuildMessages assembles the exact message list sent to the model for one
// exchange: one system message, the windowed history in chronological
// order, then the new user message. Pure: identical inputs produce
// byte-identical output, and malformed inputs are passed through as-is.
func BuildMessages(persona *catalog.Persona, script *catalog.Script, history []Turn, userText string) []openai.Message {
	system := fmt.Sprintf(roleplaySystemPrompt,
		persona.Name, persona.RoleTitle,
		persona.SystemPrompt,
		script.ProductName,
		script.Industry, script.CompanySize, script.TargetLocation,
		persona.RoleTitle,
	)

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	messages := make([]openai.Message, 0, len(history)+2)
	messages = append(messages, openai.Message{Role: "system", Content: system})
	for _, turn := range history {
		messages = append(messages, openai.Message{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, openai.Message{Role: "user", Content: userText})

	return messages
}
