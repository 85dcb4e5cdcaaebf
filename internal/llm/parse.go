package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSON recovers a JSON document from raw model text. Models wrap JSON in
// markdown code fences or surround it with prose; two strategies are applied
// in order: fence stripping, then extraction of the first {...} or [...] span.
// It fails rather than guessing when neither yields valid JSON.
func CleanJSON(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)

	if stripped, ok := stripFences(text); ok {
		text = stripped
	}
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}

	if span, ok := extractSpan(text); ok && json.Valid([]byte(span)) {
		return json.RawMessage(span), nil
	}

	return nil, &ErrInvalidResponse{
		Content: json.RawMessage(raw),
		Err:     fmt.Errorf("no JSON document found in model output"),
	}
}

// stripFences removes a leading ```json (or bare ```) fence and its closer.
func stripFences(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	body := text[3:]
	// Drop a language tag such as "json" on the fence line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

// extractSpan returns the substring from the first opening brace or bracket
// to its matching closer, tracking nesting and string literals.
func extractSpan(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}
	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
