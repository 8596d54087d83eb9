package chatflow

import "testing"

func TestSmartCompletionFirstMatchWins(t *testing.T) {
	// "i need a logo" matches both the logo rule and the generic "i need"
	// rule; the more specific one is ordered first.
	if got := SmartCompletion("I need a logo"); got != " for my brand" {
		t.Fatalf("got %q", got)
	}
	if got := SmartCompletion("I need"); got != " a design for" {
		t.Fatalf("got %q", got)
	}
}

func TestSmartCompletionNoMatch(t *testing.T) {
	if got := SmartCompletion("thanks, that works"); got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}
	if got := SmartCompletion("   "); got != "" {
		t.Fatalf("expected no suggestion for blank input, got %q", got)
	}
}

func TestHasReadyIndicator(t *testing.T) {
	positives := []string{
		"Great — your brief is ready for a designer.",
		"I have everything we need to get started.",
		"Shall I hand this off to a designer?",
		"Let's find you a designer.",
	}
	for _, s := range positives {
		if !HasReadyIndicator(s) {
			t.Fatalf("expected ready indicator in %q", s)
		}
	}
	negatives := []string{
		"Could you tell me more about the audience?",
		"What platform is this for?",
	}
	for _, s := range negatives {
		if HasReadyIndicator(s) {
			t.Fatalf("unexpected ready indicator in %q", s)
		}
	}
}
