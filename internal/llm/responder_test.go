package llm

import (
	"context"
	"strings"
	"testing"

	"atelier/internal/brief"
	"atelier/internal/chatflow"
)

func TestHeuristicReadyReplyTriggersIndicator(t *testing.T) {
	reply, err := HeuristicResponder{}.Reply(context.Background(), Turn{Ready: true})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if !chatflow.HasReadyIndicator(reply) {
		t.Fatalf("ready reply not recognized by indicator: %q", reply)
	}
}

func TestHeuristicAsksQuestion(t *testing.T) {
	q := brief.Question{ID: "q_platform", Prompt: "Where will this design live?"}
	reply, err := HeuristicResponder{}.Reply(context.Background(), Turn{Completion: 30, Question: &q})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if !strings.Contains(reply, q.Prompt) {
		t.Fatalf("question missing from reply: %q", reply)
	}
}

func TestExtractReply(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"reply": "Sounds good!"}`, "Sounds good!"},
		{`{"message": "Renamed field"}`, "Renamed field"},
		{`Just plain text`, "Just plain text"},
		{`{"count": 3}`, ""},
		{``, ""},
	}
	for _, tc := range cases {
		if got := extractReply(tc.raw); got != tc.want {
			t.Fatalf("extractReply(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
