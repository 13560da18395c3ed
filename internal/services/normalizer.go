package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Fences are only stripped at the edges of a reply; backticks inside JSON
// strings are content.
var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?")
	closingFence = regexp.MustCompile("```$")
)

// bulletCutset holds whitespace, dashes and bullets, including the mis-decoded
// UTF-8 bullet some models emit.
const bulletCutset = " \t\r\n-•â€¢"

// Normalized is a model reply reduced to a JSON object. Its accessors never
// fail; they return zero values for missing keys or unexpected types.
type Normalized map[string]any

// Normalize turns a raw model reply into a JSON object. Replies that are not a
// JSON object are split into lines and returned under "suggestions".
func Normalize(reply string) Normalized {
	cleaned := openingFence.ReplaceAllString(strings.TrimSpace(reply), "")
	cleaned = strings.TrimSpace(closingFence.ReplaceAllString(cleaned, ""))

	if gjson.Valid(cleaned) {
		if parsed := gjson.Parse(cleaned); parsed.IsObject() {
			if obj, ok := parsed.Value().(map[string]any); ok {
				return Normalized(obj)
			}
		}
	}

	suggestions := make([]any, 0)
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.Trim(line, bulletCutset)
		if line != "" {
			suggestions = append(suggestions, line)
		}
	}

	return Normalized{"suggestions": suggestions}
}

// String returns the trimmed string at key.
func (n Normalized) String(key string) string {
	s, ok := n[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Strings returns the non-empty strings at key. A single string is treated as
// a one-element list; numbers inside a list are formatted.
func (n Normalized) Strings(key string) []string {
	out := make([]string, 0)

	switch v := n[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range v {
			var s string
			switch it := item.(type) {
			case string:
				s = strings.TrimSpace(it)
			case float64:
				s = strconv.FormatFloat(it, 'f', -1, 64)
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}

// Number returns the number at key. Numeric strings such as "85" or "85%"
// are accepted.
func (n Normalized) Number(key string) (float64, bool) {
	switch v := n[key].(type) {
	case float64:
		return v, true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Object returns the nested object at key, or an empty one.
func (n Normalized) Object(key string) Normalized {
	if obj, ok := n[key].(map[string]any); ok {
		return Normalized(obj)
	}
	return Normalized{}
}

// Objects returns the objects found in the list at key, skipping other items.
func (n Normalized) Objects(key string) []Normalized {
	out := make([]Normalized, 0)

	items, ok := n[key].([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Normalized(obj))
		}
	}

	return out
}
