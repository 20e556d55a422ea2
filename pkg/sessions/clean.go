package sessions

import (
	"regexp"
	"strings"
)

const (
	promptSampleLen   = 500
	minCleanPromptLen = 10
	minIntentLen      = 15
)

// Prefixes of user messages the client injects itself.
var generatedPrefixes = []string{
	"You are the **",
	"Resume instructions:",
	"[Request interrupted",
	"Caveat:",
	"This session is being continued",
}

// Prompts that only restart work and say nothing about it.
var continuationPrompts = map[string]bool{
	"resume":        true,
	"continue":      true,
	"lets resume":   true,
	"let's resume":  true,
	"lets continue": true,
	"go on":         true,
}

var (
	imageRe   = regexp.MustCompile(`\[Image:[^\]]+\]`)
	tokenRe   = regexp.MustCompile(`eyJ[A-Za-z0-9_-]{20,}`)
	quoteRe   = regexp.MustCompile(`^\s*>\s*`)
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*]+)\*`)
	codeRe    = regexp.MustCompile("`([^`]+)`")
	linkRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	bulletRe  = regexp.MustCompile(`^[-*]\s+`)
	headingRe = regexp.MustCompile(`^#+\s+`)
)

// cleanMessage strips markdown and client noise from a user prompt. It
// returns "" when nothing meaningful is left.
func cleanMessage(msg string) string {
	if msg == "" {
		return ""
	}
	if strings.HasPrefix(msg, "#") && strings.Contains(head(msg, 50), "Agent") {
		return ""
	}
	for _, prefix := range generatedPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return ""
		}
	}

	clean := strings.TrimSpace(msg)
	clean = imageRe.ReplaceAllString(clean, "")
	clean = tokenRe.ReplaceAllString(clean, "[token]")
	clean = quoteRe.ReplaceAllString(clean, "")
	clean = boldRe.ReplaceAllString(clean, "$1")
	clean = italicRe.ReplaceAllString(clean, "$1")
	clean = codeRe.ReplaceAllString(clean, "$1")
	clean = linkRe.ReplaceAllString(clean, "$1")
	clean = bulletRe.ReplaceAllString(clean, "")
	clean = headingRe.ReplaceAllString(clean, "")
	clean = strings.Join(strings.Fields(clean), " ")

	if len(clean) < minCleanPromptLen {
		return ""
	}
	return clean
}

// isPromptCandidate reports whether raw user text may describe the session.
func isPromptCandidate(text string) bool {
	return text != "" && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "Caveat")
}

// firstIntent picks the first substantive prompt.
func firstIntent(prompts []string) string {
	for _, p := range prompts {
		if continuationPrompts[strings.ToLower(strings.TrimSpace(p))] {
			continue
		}
		clean := cleanMessage(p)
		if len(clean) > minIntentLen {
			return clean
		}
	}
	return ""
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
