package brief

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Inference is keyword-driven: each user message is scanned against ordered
// tables and the brief is updated wherever the message improves on what is
// already known. Confirmed fields are never overwritten.

type platformRule struct {
	keywords []string
	platform Platform
}

// Specific channels before generic ones: "instagram story" style phrasing
// should land on instagram, not web.
var platformRules = []platformRule{
	{[]string{"instagram", "insta ", " ig "}, PlatformInstagram},
	{[]string{"linkedin"}, PlatformLinkedIn},
	{[]string{"facebook", " fb "}, PlatformFacebook},
	{[]string{"twitter", "x post", "tweet"}, PlatformTwitter},
	{[]string{"youtube", "thumbnail"}, PlatformYouTube},
	{[]string{"tiktok", "tik tok"}, PlatformTikTok},
	{[]string{"print", "flyer", "poster", "brochure", "business card"}, PlatformPrint},
	{[]string{"email", "newsletter"}, PlatformEmail},
	{[]string{"presentation", "slide deck", "pitch deck", "slides"}, PlatformPresentation},
	{[]string{"website", "landing page", "web banner", "hero image"}, PlatformWeb},
}

type intentRule struct {
	keywords []string
	intent   Intent
}

var intentRules = []intentRule{
	{[]string{"sign up", "signup", "sign-up", "waitlist", "register", "subscriber"}, IntentSignups},
	{[]string{"thought leader", "authority", "credibility", "expertise"}, IntentAuthority},
	{[]string{"launch", "announce", "introducing", "new release", "coming soon"}, IntentAnnouncement},
	{[]string{"sell", "sales", "conversion", "buy", "discount", "promo"}, IntentSales},
	{[]string{"teach", "educat", "explain", "how to", "tutorial", "guide"}, IntentEducation},
	{[]string{"engage", "community", "followers", "likes", "viral"}, IntentEngagement},
	{[]string{"awareness", "brand recognition", "get noticed", "visibility", "reach"}, IntentAwareness},
}

// Default output sizes per platform, added when a platform is inferred and
// the client has not chosen dimensions yet.
var platformDimensions = map[Platform]Dimension{
	PlatformInstagram:    {Width: 1080, Height: 1080, Label: "Instagram Post", AspectRatio: "1:1"},
	PlatformLinkedIn:     {Width: 1200, Height: 627, Label: "LinkedIn Post", AspectRatio: "1.91:1"},
	PlatformFacebook:     {Width: 1200, Height: 630, Label: "Facebook Post", AspectRatio: "1.91:1"},
	PlatformTwitter:      {Width: 1600, Height: 900, Label: "Twitter Post", AspectRatio: "16:9"},
	PlatformYouTube:      {Width: 1280, Height: 720, Label: "YouTube Thumbnail", AspectRatio: "16:9"},
	PlatformTikTok:       {Width: 1080, Height: 1920, Label: "TikTok Video", AspectRatio: "9:16"},
	PlatformWeb:          {Width: 1440, Height: 600, Label: "Web Hero", AspectRatio: "12:5"},
	PlatformEmail:        {Width: 600, Height: 800, Label: "Email Header", AspectRatio: "3:4"},
	PlatformPresentation: {Width: 1920, Height: 1080, Label: "Slide", AspectRatio: "16:9"},
	PlatformPrint:        {Width: 2480, Height: 3508, Label: "A4 Print", AspectRatio: "1:1.41"},
}

var (
	campaignRe   = regexp.MustCompile(`\b(campaign|content (?:plan|calendar)|weekly|month of)\b`)
	multiAssetRe = regexp.MustCompile(`\b([2-9]|1[0-9]|20)\s+(?:posts?|images?|designs?|assets?|pieces?|slides?)\b`)
	audienceRe   = regexp.MustCompile(`(?i)\b(?:for|targeting|aimed at|audience (?:is|of))\s+((?:young |busy |local |small )?(?:founders|startups|developers|designers|marketers|parents|students|professionals|creators|entrepreneurs|business(?:es| owners)?|gen z|millennials|executives|freelancers|teams))`)
)

// ApplyMessage updates the brief from one user message. It returns the names
// of the fields it changed, in a stable order.
func ApplyMessage(b *LiveBrief, content string) []FieldName {
	if b == nil {
		return nil
	}
	text := strings.TrimSpace(content)
	if text == "" {
		return nil
	}
	lower := " " + strings.ToLower(text) + " "
	var changed []FieldName

	if upgradeable(b.TaskSummary) {
		if summary := summarize(text); summary != "" {
			b.TaskSummary = Inferred(summary, 0.75)
			changed = append(changed, FieldTaskSummary)
		}
	}

	if upgradeable(b.TaskType) {
		switch {
		case campaignRe.MatchString(lower):
			b.TaskType = Inferred(TaskCampaign, 0.7)
			changed = append(changed, FieldTaskType)
		case multiAssetRe.MatchString(lower):
			b.TaskType = Inferred(TaskMultiAsset, 0.7)
			changed = append(changed, FieldTaskType)
		case b.TaskType.Value == nil:
			b.TaskType = Inferred(TaskSingleAsset, 0.5)
			changed = append(changed, FieldTaskType)
		}
	}

	if upgradeable(b.Intent) {
		for _, rule := range intentRules {
			if containsAny(lower, rule.keywords) {
				b.Intent = Inferred(rule.intent, 0.75)
				changed = append(changed, FieldIntent)
				break
			}
		}
	}

	if upgradeable(b.Platform) {
		for _, rule := range platformRules {
			if containsAny(lower, rule.keywords) {
				b.Platform = Inferred(rule.platform, 0.8)
				changed = append(changed, FieldPlatform)
				break
			}
		}
	}

	if upgradeable(b.Audience) {
		if m := audienceRe.FindStringSubmatch(text); m != nil {
			b.Audience = Inferred(Audience{Description: strings.TrimSpace(m[1])}, 0.7)
			changed = append(changed, FieldAudience)
		}
	}

	if upgradeable(b.Topic) {
		if topic := extractTopic(text); topic != "" {
			b.Topic = Inferred(topic, 0.7)
			changed = append(changed, FieldTopic)
		}
	}

	if len(b.Dimensions) == 0 && b.Platform.Filled() {
		if dim, ok := platformDimensions[*b.Platform.Value]; ok {
			b.AddDimension(dim)
		}
	}

	if len(changed) > 0 {
		b.Touch()
		b.Recompute()
	}
	return changed
}

// upgradeable reports whether inference may write the field: anything not
// yet confirmed by the user.
func upgradeable[T any](f Field[T]) bool {
	return f.Source != SourceConfirmed
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

var topicRe = regexp.MustCompile(`(?:for|about|showcasing|featuring|promoting|introducing)\s+((?:[A-Z][\w&'-]*)(?:\s+[A-Z][\w&'-]*){0,3})`)

func extractTopic(text string) string {
	m := topicRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(m[1]), "'s")
}

// summarize keeps the first sentence of the message, capped to a length
// that fits the brief card in the UI.
func summarize(text string) string {
	s := strings.TrimSpace(text)
	for _, sep := range []string{". ", "! ", "? ", "\n"} {
		if i := strings.Index(s, sep); i > 0 {
			s = s[:i+1]
			break
		}
	}
	s = strings.TrimSpace(s)
	const maxSummary = 140
	if len(s) > maxSummary {
		cut := maxSummary - 3
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimSpace(s[:cut]) + "..."
	}
	return s
}
