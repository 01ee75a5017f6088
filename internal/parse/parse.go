// Package parse extracts structured verdicts from free-form model output.
// Model responses wrap JSON in prose, code fences, or nothing at all, so
// extraction is tried in order of reliability and failure always degrades to
// a usable default rather than an error.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/dowserhq/dowser/pkg/models"
)

const fence = "```"

// Verdict parses a Critic response into a models.Verdict. It never fails:
// when no parseable JSON object can be found, it returns the
// default-optimistic verdict so a malformed response cannot stall the
// pipeline.
func Verdict(text string) models.Verdict {
	raw, ok := extractJSONObject(text)
	if !ok {
		return models.DefaultOptimisticVerdict()
	}

	var v models.Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return models.DefaultOptimisticVerdict()
	}
	return v
}

// TrailingProse returns the text that follows the first JSON object in text,
// e.g. the human-readable report after a JSON preamble. When text contains
// no JSON object it is returned unchanged, never truncated to empty. When
// the object is found but nothing follows it, fallback is returned.
func TrailingProse(text, fallback string) string {
	_, end, ok := locateJSONObject(text)
	if !ok {
		return text
	}
	tail := strings.TrimSpace(text[end:])
	// A fenced object's closing marker is not part of the prose.
	tail = strings.TrimSpace(strings.TrimPrefix(tail, fence))
	if tail == "" {
		return fallback
	}
	return tail
}

// extractJSONObject returns the first JSON object found in text.
// Strategies, first success wins: fenced block interior, brace-delimited
// scan, whole trimmed text.
func extractJSONObject(text string) (string, bool) {
	if inner, ok := fencedBlock(text); ok && json.Valid([]byte(inner)) {
		return inner, true
	}

	if start, end, ok := locateJSONObject(text); ok {
		candidate := text[start:end]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") && json.Valid([]byte(trimmed)) {
		return trimmed, true
	}

	return "", false
}

// fencedBlock returns the interior of the first triple-backtick block,
// stripping an optional language tag on the opening line.
func fencedBlock(text string) (string, bool) {
	open := strings.Index(text, fence)
	if open == -1 {
		return "", false
	}
	rest := text[open+len(fence):]

	// Skip a language tag such as "json" up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || isLanguageTag(tag) {
			rest = rest[nl+1:]
		}
	}

	closing := strings.Index(rest, fence)
	if closing == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:closing]), true
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// locateJSONObject scans for the first top-level JSON object and returns the
// [start, end) bounds of the substring from its opening brace to the
// matching closing brace. The scan tracks quoted-string state and
// backslash escapes so braces inside string literals do not affect depth.
func locateJSONObject(text string) (start, end int, ok bool) {
	start = strings.IndexByte(text, '{')
	if start == -1 {
		return 0, 0, false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}

	return 0, 0, false
}
