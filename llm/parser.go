package llm

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"
)

// The reasoning service is instructed to return JSON but routinely wraps it
// in prose, fenced code blocks, or near-JSON with Python-style quoting.
// ParseLoose recovers a mapping from such output with a layered fallback;
// strict-JSON-only parsing is not enough in practice.

var (
	fenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	braceRe = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ParseLoose extracts the first parseable JSON object from text. The
// attempts, in order: fenced code blocks (document order), the outermost
// brace-delimited span, then the same span after textual repair. If every
// attempt fails it returns an empty (non-nil) map and logs a prefix of the
// offending text; callers must default every expected field.
func ParseLoose(text string) map[string]interface{} {
	for _, m := range fenceRe.FindAllStringSubmatch(text, -1) {
		if obj, ok := tryParse(m[1]); ok {
			return obj
		}
	}

	if span := braceRe.FindString(text); span != "" {
		if obj, ok := tryParse(span); ok {
			return obj
		}
	}

	if span := braceRe.FindString(repairJSON(text)); span != "" {
		if obj, ok := tryParse(span); ok {
			return obj
		}
	}

	log.Printf("JSON parsing failed for: %s...", truncate(text, 300))
	return map[string]interface{}{}
}

func tryParse(candidate string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// repairJSON normalizes the most common near-JSON mistakes: single-quoted
// strings and capitalized boolean literals.
func repairJSON(text string) string {
	r := strings.NewReplacer("'", `"`, "True", "true", "False", "false")
	return r.Replace(text)
}

// truncate cuts s to at most n runes, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
