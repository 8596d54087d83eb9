package taskgen

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func TestEmptyConversationDefaults(t *testing.T) {
	p := FromConversation(nil)
	assert.Equal(t, "Design Request", p.Title)
	assert.Equal(t, CategorySocialMedia, p.Category)
	assert.Equal(t, 15, p.CreditsRequired)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, 24, p.EstimatedHours)
	assert.Equal(t, 3, p.DeliveryDays)
}

func TestAssistantMessagesIgnored(t *testing.T) {
	p := FromConversation([]Message{
		{Role: RoleAssistant, Content: "Do you need a logo?"},
	})
	assert.Equal(t, CategorySocialMedia, p.Category)
	assert.Equal(t, 15, p.CreditsRequired)
}

func TestInstagramPostsRushPricing(t *testing.T) {
	p := FromConversation([]Message{
		user("I need 5 Instagram posts for my new SaaS launch, it's urgent"),
	})
	// base 15 + (5-1)*3 = 27, rush x1.25 = 33.75 -> 34
	assert.Equal(t, CategorySocialMedia, p.Category)
	assert.Equal(t, 34, p.CreditsRequired)
}

func TestCategoryKeywords(t *testing.T) {
	cases := []struct {
		text     string
		category string
		base     int
	}{
		{"a logo for my bakery", CategoryLogoDesign, 40},
		{"a short video reel", CategoryVideo, 30},
		{"a web banner", CategoryAdvertising, 20},
		{"an ad for the spring sale", CategoryAdvertising, 20},
		{"refresh my brand identity", CategoryBranding, 60},
		{"something for my feed", CategorySocialMedia, 15},
	}
	for _, tc := range cases {
		p := FromConversation([]Message{user(tc.text)})
		assert.Equalf(t, tc.category, p.Category, "text: %s", tc.text)
		assert.GreaterOrEqualf(t, p.CreditsRequired, tc.base, "text: %s", tc.text)
	}
}

func TestAdWordBoundary(t *testing.T) {
	p := FromConversation([]Message{user("please add a headline to my post")})
	assert.Equal(t, CategorySocialMedia, p.Category)
}

func TestQuantityFirstMatchOnly(t *testing.T) {
	// Both "slides" and "posts" match; only the higher-priority unit counts.
	p := FromConversation([]Message{user("10 slides and 3 posts for the deck")})
	// Social Media base 15 + (10-1)*3 = 42
	assert.Equal(t, 42, p.CreditsRequired)
}

func TestQuantityQualifierWord(t *testing.T) {
	// A brand or channel word between the count and the unit still counts.
	p := FromConversation([]Message{user("4 hero images for the landing page")})
	// Social Media base 15 + (4-1)*3 = 24
	assert.Equal(t, 24, p.CreditsRequired)
}

func TestQuantityBounds(t *testing.T) {
	one := FromConversation([]Message{user("1 post please")})
	assert.Equal(t, 15, one.CreditsRequired)

	many := FromConversation([]Message{user("50 posts please")})
	assert.Equal(t, 15, many.CreditsRequired, "counts over 20 are ignored")
}

func TestSurchargeOrderAndClamp(t *testing.T) {
	p := FromConversation([]Message{
		user("An animated brand video, multi-platform, needed asap"),
	})
	// Video 30 + animation 10 + multi-platform 5 = 45, x1.25 = 56.25 -> 56
	assert.Equal(t, CategoryVideo, p.Category)
	assert.Equal(t, 56, p.CreditsRequired)

	clamped := FromConversation([]Message{
		user("Rush this: a brand refresh with 20 designs, animated, multiple platforms, urgent"),
	})
	assert.Equal(t, CategoryBranding, clamped.Category)
	assert.Equal(t, 100, clamped.CreditsRequired)
}

func TestTitleAssembly(t *testing.T) {
	both := FromConversation([]Message{user("A feature video for Launchpad")})
	assert.Equal(t, "Launchpad Feature Explainer Video", both.Title)

	productOnly := FromConversation([]Message{user("Something eye-catching for Acme Robotics")})
	assert.Equal(t, "Acme Robotics Design Request", productOnly.Title)

	contentOnly := FromConversation([]Message{user("i want an explainer about our onboarding")})
	assert.Equal(t, "Explainer Video", contentOnly.Title)
}

func TestTitlePossessiveTrim(t *testing.T) {
	p := FromConversation([]Message{user("A banner promoting Acme's summer sale")})
	require.True(t, strings.HasPrefix(p.Title, "Acme "), "title: %s", p.Title)
	assert.NotContains(t, p.Title, "Acme's")
}

func TestTitleQuotedFallback(t *testing.T) {
	p := FromConversation([]Message{user(`a poster that says "grand opening" in bold`)})
	assert.Contains(t, p.Title, ": grand opening")
}

func TestTitleTruncation(t *testing.T) {
	long := "A banner for " + strings.Repeat("Verylongbrandname ", 4) + "please"
	p := FromConversation([]Message{user(long)})
	assert.LessOrEqual(t, len(p.Title), 60)
	assert.True(t, strings.HasSuffix(p.Title, "..."), "title: %s", p.Title)
}

func TestDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("details ", 60)
	p := FromConversation([]Message{user(long)})
	assert.LessOrEqual(t, len(p.Description), 200)
	assert.True(t, strings.HasSuffix(p.Description, "..."))
}

func TestTruncationKeepsValidUTF8(t *testing.T) {
	p := FromConversation([]Message{user(strings.Repeat("é", 150))})
	assert.True(t, strings.HasSuffix(p.Description, "..."))
	assert.True(t, utf8.ValidString(p.Description), "description: %q", p.Description)
	assert.True(t, utf8.ValidString(p.Title), "title: %q", p.Title)
}

func TestDeterminism(t *testing.T) {
	msgs := []Message{
		user("I need 3 images for Acme"),
		{Role: RoleAssistant, Content: "Sure!"},
		user("make them animated and urgent"),
	}
	first := FromConversation(msgs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FromConversation(msgs))
	}
}
