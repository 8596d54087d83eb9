package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/gjson"
	genai "google.golang.org/genai"
)

var ErrInvalidReply = errors.New("llm: invalid reply from model")

// GeminiResponder wraps the official genai client. The model is asked for a
// JSON object so the reply text can be extracted leniently even when the
// model wraps it in extra fields.
type GeminiResponder struct {
	cli      *genai.Client
	model    string
	fallback HeuristicResponder
}

func NewGeminiResponder(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiResponder{cli: cli, model: model}, nil
}

const replyPrompt = `You are the intake assistant for a freelance design marketplace.
You help a client shape a design brief through conversation.
Respond with a JSON object: {"reply": "<your next message to the client>"}.
Keep replies short, concrete and friendly. If a clarifying question is
provided below, work it into your reply. If the brief is marked ready, tell
the client their brief is ready for a designer.`

// Reply asks the model for the next assistant message. Any failure falls
// back to the template responder so the conversation never stalls.
func (g *GeminiResponder) Reply(ctx context.Context, turn Turn) (string, error) {
	if g == nil || g.cli == nil {
		return g.fallback.Reply(ctx, turn)
	}

	input := map[string]any{
		"conversation": turn.Messages,
		"brief":        turn.Brief,
		"completion":   turn.Completion,
		"ready":        turn.Ready,
	}
	if turn.Question != nil {
		input["clarifyingQuestion"] = turn.Question.Prompt
	}
	in, _ := json.MarshalIndent(input, "", "  ")
	full := replyPrompt + "\n\n[INPUT JSON]\n" + string(in)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrInvalidReply
			continue
		}
		text := resp.Candidates[0].Content.Parts[0].Text
		if reply := extractReply(text); reply != "" {
			return reply, nil
		}
		lastErr = ErrInvalidReply
	}

	log.Printf("llm: gemini reply failed after retries: %v", lastErr)
	return g.fallback.Reply(ctx, turn)
}

// extractReply pulls the reply string out of model output that is supposed
// to be {"reply": "..."} but often is not quite.
func extractReply(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if r := gjson.Get(raw, "reply"); r.Exists() {
		return strings.TrimSpace(r.String())
	}
	// Some models nest or rename; take the first string field.
	var first string
	gjson.Parse(raw).ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			first = value.String()
			return false
		}
		return true
	})
	if first != "" {
		return strings.TrimSpace(first)
	}
	// Not JSON at all: treat plain text as the reply.
	if !strings.HasPrefix(raw, "{") {
		return raw
	}
	return ""
}
