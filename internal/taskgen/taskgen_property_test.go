package taskgen

import (
	"testing"

	"pgregory.net/rapid"
)

// Credits stay inside [category base, 100] for arbitrary conversations.
func TestCreditsBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "messages")
		msgs := make([]Message, 0, n)
		for i := 0; i < n; i++ {
			role := RoleUser
			if rapid.Bool().Draw(t, "assistant") {
				role = RoleAssistant
			}
			alphabet := rapid.RuneFrom([]rune("abcdefghijklmnopqrstuvwxyz ABCDEFGH0123456789'\".,!?"))
			content := rapid.StringOfN(alphabet, 0, 200, -1).Draw(t, "content")
			msgs = append(msgs, Message{Role: role, Content: content})
		}

		p := FromConversation(msgs)
		base := BaseCredits(p.Category)
		if p.CreditsRequired < base {
			t.Fatalf("credits %d below category base %d", p.CreditsRequired, base)
		}
		if p.CreditsRequired > 100 {
			t.Fatalf("credits %d above clamp", p.CreditsRequired)
		}
		if len(p.Title) > 60 {
			t.Fatalf("title longer than 60: %q", p.Title)
		}
	})
}
