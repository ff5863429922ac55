package chat

import "strings"

// EnsureCodeFences wraps a reply that looks like bare code in a single fenced
// block so the display client renders it verbatim. Replies that already
// contain a fence are returned unchanged, which also makes the transform
// idempotent. The detection is a heuristic, not language detection.
func EnsureCodeFences(text string) string {
	if strings.Contains(text, "```") {
		return text
	}
	if !looksLikeCode(text) {
		return text
	}
	return "```text\n" + text + "\n```"
}

var codeTokens = []string{"import", "export", "function", "class"}

func looksLikeCode(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, "}") || strings.HasSuffix(trimmed, ";") {
			return true
		}
		if strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "\t") {
			return true
		}
	}

	for _, token := range codeTokens {
		if strings.Contains(text, token+" ") || strings.Contains(text, token+"\t") {
			return true
		}
	}
	return false
}
