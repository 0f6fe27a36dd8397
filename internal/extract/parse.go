package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// bulletMarker matches a leading list marker: bullet characters with an
// optional ./) suffix, or digits that must carry one (so a line starting
// with a bare number, e.g. a year, is left alone).
var bulletMarker = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])[.)]?\s*`)

// fencedJSON captures the inner content of a ```json code fence.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")

// ParseList converts free-form model output into a list of items: one per
// non-blank line, with leading bullet or numbering markers stripped.
// Lines that are empty after stripping are dropped. Already-clean input
// passes through unchanged, so the function is idempotent.
func ParseList(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// DecodeJSON locates the JSON payload inside raw model output and
// unmarshals it into v. It reports success rather than returning an
// error: malformed model output is an expected condition, and the caller
// keeps its default value when decoding fails. v is only written on
// success.
func DecodeJSON(text string, v any) bool {
	candidate, ok := jsonCandidate(text)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(candidate), v) == nil
}

// jsonCandidate picks the most plausible JSON substring: a ```json fence
// wins, otherwise the first balanced-looking array or object span.
func jsonCandidate(text string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	arr := strings.Index(text, "[")
	obj := strings.Index(text, "{")

	start, closer := -1, byte(0)
	switch {
	case arr >= 0 && (obj < 0 || arr < obj):
		start, closer = arr, ']'
	case obj >= 0:
		start, closer = obj, '}'
	default:
		return "", false
	}

	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
