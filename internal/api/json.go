package api

import (
	"strings"

	"github.com/tidwall/gjson"
)

// answerPaths are the fields checked, in order, for the answer text of a
// JSON-mode response
var answerPaths = []string{"text", "answer", "response", "message"}

// UnwrapJSONAnswer extracts displayable text from a JSON-mode response.
// A JSON string literal is returned unquoted; an object with a string field
// named in answerPaths yields that field. Anything else, including invalid
// JSON, is returned unchanged.
func UnwrapJSONAnswer(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !gjson.Valid(trimmed) {
		return raw
	}

	parsed := gjson.Parse(trimmed)
	switch {
	case parsed.Type == gjson.String:
		return parsed.String()
	case parsed.IsObject():
		for _, path := range answerPaths {
			if v := parsed.Get(path); v.Type == gjson.String {
				return v.String()
			}
		}
	}

	return raw
}
