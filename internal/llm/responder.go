// Package llm produces the assistant's conversational replies. A Gemini
// client is used when configured; a deterministic template responder keeps
// the conversation flow total when it is not.
package llm

import (
	"context"
	"fmt"
	"strings"

	"atelier/internal/brief"
	"atelier/internal/taskgen"
)

// Turn is everything the responder may draw on for one assistant reply.
type Turn struct {
	Messages   []taskgen.Message
	Brief      *brief.LiveBrief
	Question   *brief.Question // clarifying question chosen for this turn, may be nil
	Completion int
	Ready      bool
}

// Responder produces one assistant reply per user turn.
type Responder interface {
	Reply(ctx context.Context, turn Turn) (string, error)
}

// HeuristicResponder is the no-dependency fallback. Its replies are plain
// templates keyed off brief state; HasReadyIndicator in chatflow is tuned
// to recognize the ready phrasing below.
type HeuristicResponder struct{}

func (HeuristicResponder) Reply(_ context.Context, turn Turn) (string, error) {
	if turn.Ready {
		return "Great — your brief is ready for a designer. Review the proposal whenever you like and I can hand this off to a designer.", nil
	}

	var b strings.Builder
	switch {
	case turn.Completion == 0:
		b.WriteString("Thanks — tell me a bit about what you'd like designed and I'll start shaping a brief.")
	case turn.Completion < 50:
		b.WriteString(fmt.Sprintf("Got it, I'm building your brief — about %d%% there.", turn.Completion))
	default:
		b.WriteString(fmt.Sprintf("Nice, the brief is %d%% complete.", turn.Completion))
	}

	if turn.Question != nil {
		b.WriteString(" ")
		b.WriteString(turn.Question.Prompt)
	} else if turn.Completion >= 50 && !turn.Ready {
		b.WriteString(" Pick a couple of styles for your moodboard so the designer knows the direction you like.")
	}
	return b.String(), nil
}
