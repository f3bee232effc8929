package interpret

import (
	"context"

	"github.com/davin-ai/agriview/services/api/normalize"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one exchange entry in a conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Conversation is the explicit chat state: callers pass it in and get
// the grown copy back. Nothing is kept between calls.
type Conversation []Turn

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Ask appends the question and the model's answer to the conversation.
// The answer is grounded on the given latest reading. On error the
// original conversation comes back unchanged.
func Ask(ctx context.Context, gen Generator, conv Conversation, latest normalize.Reading, question string) (Conversation, error) {
	answer, err := gen.Generate(ctx, FollowUpPrompt(latest, question))
	if err != nil {
		return conv, err
	}

	out := make(Conversation, 0, len(conv)+2)
	out = append(out, conv...)
	out = append(out, Turn{Role: RoleUser, Text: question})
	out = append(out, Turn{Role: RoleAssistant, Text: answer})
	return out, nil
}
