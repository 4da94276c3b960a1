package llm

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
)

// ExtractJSON recovers a JSON object from a model response that may wrap it
// in markdown fences or surround it with prose. It strips a ```json (or bare
// ```) fence if present, then cuts the text down to the outermost brace pair.
func ExtractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", goerr.New("no JSON object in response",
			goerr.V("text", truncate(text, 256)),
			goerr.T(errs.TagInvalidLLMResponse))
	}
	return s[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
