package chatflow

import (
	"regexp"
	"strings"
)

// Best-effort helpers for the chat input. Both are ordered first-match-wins
// tables; nothing downstream depends on them for correctness.

type completionRule struct {
	re         *regexp.Regexp
	suggestion string
}

// Specific phrasings before generic ones.
var completionRules = []completionRule{
	{regexp.MustCompile(`(?i)\bi need a logo\b$`), " for my brand"},
	{regexp.MustCompile(`(?i)\bi need an? \b.*\bfor\b$`), " my upcoming launch"},
	{regexp.MustCompile(`(?i)\bi need\b$`), " a design for"},
	{regexp.MustCompile(`(?i)\bsomething that\b$`), " feels modern and clean"},
	{regexp.MustCompile(`(?i)\bthe audience is\b$`), " small business owners"},
	{regexp.MustCompile(`(?i)\bfor instagram\b$`), " , square format"},
	{regexp.MustCompile(`(?i)\bmake it\b$`), " bold and minimal"},
}

// SmartCompletion proposes an inline continuation for a partially typed
// message, or "" when no rule applies.
func SmartCompletion(text string) string {
	trimmed := strings.TrimRight(text, " ")
	if trimmed == "" {
		return ""
	}
	for _, rule := range completionRules {
		if rule.re.MatchString(trimmed) {
			return rule.suggestion
		}
	}
	return ""
}

// Phrases in an assistant reply that signal the brief is ready to hand off.
var readyRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbrief (?:is|looks) (?:ready|complete)\b`),
	regexp.MustCompile(`(?i)\bready (?:to|for) (?:submit|review|a designer)\b`),
	regexp.MustCompile(`(?i)\beverything (?:i|we) need\b`),
	regexp.MustCompile(`(?i)\bhand (?:this |it )?(?:off|over) to a designer\b`),
	regexp.MustCompile(`(?i)\bfind (?:you|the right) (?:a )?designer\b`),
}

// HasReadyIndicator reports whether an assistant reply reads as "the brief
// is ready".
func HasReadyIndicator(content string) bool {
	for _, re := range readyRes {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}
