package response

import (
	"encoding/json"
	"fmt"
	"strings"

	"inspire-it-be/internal/entity"
	"inspire-it-be/internal/pkg/apperrors"
)

// Parsing is all-or-nothing: a malformed batch is discarded whole, there is
// no per-idea salvage. Callers keep prior session state on failure so the
// user can simply retry.

type ideasEnvelope struct {
	Ideas []entity.Idea `json:"ideas"`
}

// ParseIdeas strips code fences from raw model output and decodes the idea
// batch. A syntax error or a missing top-level "ideas" key is a parse error.
func ParseIdeas(raw string) ([]entity.Idea, error) {
	const op = "response.ParseIdeas"

	cleaned := stripFences(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, apperrors.Parse(op, err)
	}
	if _, ok := probe["ideas"]; !ok {
		return nil, apperrors.Parse(op, fmt.Errorf("missing top-level \"ideas\" key"))
	}

	var envelope ideasEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, apperrors.Parse(op, err)
	}

	ideas := envelope.Ideas
	for i := range ideas {
		if ideas[i].Opportunities == nil {
			ideas[i].Opportunities = []string{}
		}
		if ideas[i].Drawbacks == nil {
			ideas[i].Drawbacks = []string{}
		}
		if ideas[i].References == nil {
			ideas[i].References = []string{}
		}
	}
	return ideas, nil
}

// ParsePaper decodes the paper outline from raw model output
func ParsePaper(raw string) (*entity.PaperOutline, error) {
	const op = "response.ParsePaper"

	cleaned := stripFences(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, apperrors.Parse(op, err)
	}
	if _, ok := probe["abstract"]; !ok {
		return nil, apperrors.Parse(op, fmt.Errorf("missing top-level \"abstract\" key"))
	}

	var outline entity.PaperOutline
	if err := json.Unmarshal([]byte(cleaned), &outline); err != nil {
		return nil, apperrors.Parse(op, err)
	}
	if outline.References == nil {
		outline.References = []string{}
	}
	if outline.Opportunities == nil {
		outline.Opportunities = []string{}
	}
	return &outline, nil
}

func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
