// Package taskgen derives a priced task proposal from a conversation.
// Everything here is deterministic and total: the same message history
// always produces the same proposal, and every branch has a fallback.
package taskgen

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Message is one turn of the conversation handed to the heuristic.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Proposal is a priced, titled summary of a design request, shown to the
// client for confirmation before it becomes a persisted task.
type Proposal struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	EstimatedHours  int    `json:"estimatedHours"`
	DeliveryDays    int    `json:"deliveryDays"`
	CreditsRequired int    `json:"creditsRequired"`
}

const (
	CategorySocialMedia = "Social Media"
	CategoryAdvertising = "Advertising"
	CategoryVideo       = "Video"
	CategoryLogoDesign  = "Logo Design"
	CategoryBranding    = "Branding"
)

// Base credit cost per category.
var baseCredits = map[string]int{
	CategorySocialMedia: 15,
	CategoryAdvertising: 20,
	CategoryVideo:       30,
	CategoryLogoDesign:  40,
	CategoryBranding:    60,
}

// BaseCredits exposes the per-category floor, used by pricing displays and
// tests.
func BaseCredits(category string) int {
	if c, ok := baseCredits[category]; ok {
		return c
	}
	return baseCredits[CategorySocialMedia]
}

const (
	maxCredits     = 100
	fixedHours     = 24
	fixedDelivery  = 3
	maxTitleLen    = 60
	maxDescription = 200
)

// FromConversation builds a proposal from the full message history. Absence
// of any user message yields the generic default proposal.
func FromConversation(messages []Message) Proposal {
	var userParts []string
	firstUser := ""
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if firstUser == "" {
			firstUser = content
		}
		userParts = append(userParts, content)
	}
	original := strings.Join(userParts, " ")
	scan := strings.ToLower(original)

	product := extractProduct(original)
	contentType, baseTitle := classifyContent(scan)
	title := assembleTitle(product, contentType, baseTitle, firstUser)
	category := classifyCategory(scan)
	credits := priceCredits(scan, category)

	return Proposal{
		Title:           title,
		Description:     truncate(firstUser, maxDescription),
		Category:        category,
		EstimatedHours:  fixedHours,
		DeliveryDays:    fixedDelivery,
		CreditsRequired: credits,
	}
}

// Product/brand extraction: a capitalized phrase following a preposition,
// e.g. "a banner for Acme Robotics". A trailing possessive is trimmed so
// "promoting Acme's launch" yields "Acme".
var productRe = regexp.MustCompile(`(?:for|about|showcasing|featuring|promoting|introducing)\s+((?:[A-Z][\w&'-]*)(?:\s+[A-Z][\w&'-]*){0,3})`)

func extractProduct(original string) string {
	m := productRe.FindStringSubmatch(original)
	if m == nil {
		return ""
	}
	product := strings.TrimSpace(m[1])
	product = strings.TrimSuffix(product, "'s")
	product = strings.TrimSuffix(product, "’s")
	return strings.TrimSpace(product)
}

type contentRule struct {
	match       func(scan string) bool
	contentType string
	baseTitle   string
}

func all(words ...string) func(string) bool {
	return func(scan string) bool {
		for _, w := range words {
			if !strings.Contains(scan, w) {
				return false
			}
		}
		return true
	}
}

func anyOf(words ...string) func(string) bool {
	return func(scan string) bool {
		for _, w := range words {
			if strings.Contains(scan, w) {
				return true
			}
		}
		return false
	}
}

// Ordered dispatch: specific combinations are tested before broader
// single-keyword matches, so "feature video" classifies as a feature
// explainer rather than generic video content. Do not reorder casually.
var contentRules = []contentRule{
	{all("feature", "video"), "Feature Explainer", "Video"},
	{all("product", "demo"), "Product Demo", "Video"},
	{all("testimonial", "video"), "Testimonial", "Video"},
	{anyOf("explainer"), "Explainer", "Video"},
	{anyOf("carousel"), "Carousel", "Post"},
	{anyOf("reel", "reels"), "Reel", "Cover"},
	{anyOf("story", "stories"), "Story", "Set"},
	{anyOf("video", "animation", "animated"), "", "Video Content"},
	{anyOf("logo"), "", "Logo Design"},
	{anyOf("thumbnail"), "Thumbnail", "Design"},
	{anyOf("banner"), "Banner", "Design"},
	{anyOf("flyer", "poster"), "Poster", "Design"},
	{anyOf("infographic"), "Infographic", "Design"},
	{anyOf("newsletter", "email"), "Email", "Design"},
	{anyOf("presentation", "pitch deck", "slide"), "Presentation", "Design"},
	{anyOf("post", "posts"), "Social", "Posts"},
}

func classifyContent(scan string) (contentType, baseTitle string) {
	for _, rule := range contentRules {
		if rule.match(scan) {
			return rule.contentType, rule.baseTitle
		}
	}
	return "", "Design Request"
}

var quotedRe = regexp.MustCompile(`["“”']([^"“”']{1,29})["“”']`)

func assembleTitle(product, contentType, baseTitle, firstUser string) string {
	var title string
	switch {
	case product != "" && contentType != "":
		title = product + " " + contentType + " " + baseTitle
	case product != "":
		title = product + " " + baseTitle
	case contentType != "":
		title = contentType + " " + baseTitle
	default:
		title = baseTitle
	}

	if product == "" {
		if m := quotedRe.FindStringSubmatch(firstUser); m != nil {
			phrase := strings.TrimSpace(m[1])
			if phrase != "" {
				title += ": " + phrase
			}
		}
	}

	title = strings.Join(strings.Fields(title), " ")
	return truncate(title, maxTitleLen)
}

func classifyCategory(scan string) string {
	switch {
	case strings.Contains(scan, "logo"):
		return CategoryLogoDesign
	case strings.Contains(scan, "video"), strings.Contains(scan, "reel"):
		return CategoryVideo
	case strings.Contains(scan, "banner"), adWordRe.MatchString(scan):
		return CategoryAdvertising
	case strings.Contains(scan, "brand"):
		return CategoryBranding
	default:
		return CategorySocialMedia
	}
}

// Word-bounded so "add" or "adapt" never reads as advertising.
var adWordRe = regexp.MustCompile(`\bads?\b`)

// Quantity units in priority order. Only the first unit that matches is
// applied; counts are not cumulative across units. One qualifier word may
// sit between the count and the unit ("5 instagram posts").
var quantityRes = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?slides?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?images?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?posts?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?frames?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?pieces?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?designs?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?concepts?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?carousels?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?stor(?:y|ies)\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?reels?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?versions?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?variants?\b`),
	regexp.MustCompile(`(\d+)\s+(?:\w+\s+)?options?\b`),
}

func perItemRate(category string) int {
	switch category {
	case CategoryVideo:
		return 5
	case CategoryAdvertising:
		return 4
	default:
		return 3
	}
}

func priceCredits(scan, category string) int {
	credits := BaseCredits(category)

	for _, re := range quantityRes {
		m := re.FindStringSubmatch(scan)
		if m == nil {
			continue
		}
		n := atoi(m[1])
		if n > 1 && n <= 20 {
			credits += (n - 1) * perItemRate(category)
		}
		break
	}

	// Flat add-ons first, then the rush multiplier on the running total.
	if strings.Contains(scan, "animation") || strings.Contains(scan, "animated") {
		credits += 10
	}
	if strings.Contains(scan, "multiple platforms") || strings.Contains(scan, "multi-platform") {
		credits += 5
	}
	if strings.Contains(scan, "rush") || strings.Contains(scan, "urgent") || strings.Contains(scan, "asap") {
		credits = int(math.Round(float64(credits) * 1.25))
	}

	if credits > maxCredits {
		credits = maxCredits
	}
	return credits
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1000 {
			return n
		}
	}
	return n
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so multibyte text stays valid UTF-8.
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + "..."
}
