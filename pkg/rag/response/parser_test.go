package response

import (
	"testing"

	"inspire-it-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdeas(t *testing.T) {
	t.Run("fenced minimal idea", func(t *testing.T) {
		raw := "```json\n{\"ideas\":[{\"title\":\"A\",\"description\":\"d\"}]}\n```"

		ideas, err := ParseIdeas(raw)
		require.NoError(t, err)
		require.Len(t, ideas, 1)

		assert.Equal(t, "A", ideas[0].Title)
		assert.Equal(t, "d", ideas[0].Description)
		// Absent list fields come back as empty slices, never nil
		assert.NotNil(t, ideas[0].Opportunities)
		assert.Empty(t, ideas[0].Opportunities)
		assert.NotNil(t, ideas[0].Drawbacks)
		assert.Empty(t, ideas[0].Drawbacks)
		assert.NotNil(t, ideas[0].References)
		assert.Empty(t, ideas[0].References)
	})

	t.Run("full batch without fences", func(t *testing.T) {
		raw := `{
			"ideas": [
				{
					"title": "Smart Irrigation",
					"description": "ML-driven watering",
					"opportunities": ["saves water"],
					"drawbacks": ["sensor cost"],
					"references": ["Paper One", "Paper Two"],
					"paper_url": "https://example.com/p1"
				},
				{"title": "Second", "description": "another"}
			]
		}`

		ideas, err := ParseIdeas(raw)
		require.NoError(t, err)
		require.Len(t, ideas, 2)

		assert.Equal(t, "Smart Irrigation", ideas[0].Title)
		assert.Equal(t, []string{"saves water"}, ideas[0].Opportunities)
		assert.Equal(t, []string{"sensor cost"}, ideas[0].Drawbacks)
		assert.Equal(t, []string{"Paper One", "Paper Two"}, ideas[0].References)
		assert.Equal(t, "https://example.com/p1", ideas[0].PaperURL)
	})

	t.Run("empty ideas array", func(t *testing.T) {
		ideas, err := ParseIdeas(`{"ideas": []}`)
		require.NoError(t, err)
		assert.Empty(t, ideas)
	})

	t.Run("malformed JSON is a parse error", func(t *testing.T) {
		_, err := ParseIdeas("Sure! Here are some ideas: 1. A smart...")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindParse))
	})

	t.Run("missing ideas key is a parse error", func(t *testing.T) {
		_, err := ParseIdeas(`{"results": []}`)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindParse))
	})

	t.Run("wrong shape under ideas key is a parse error", func(t *testing.T) {
		_, err := ParseIdeas(`{"ideas": "not an array"}`)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindParse))
	})
}

func TestParsePaper(t *testing.T) {
	t.Run("fenced outline", func(t *testing.T) {
		raw := "```json\n{\"abstract\":\"An abstract\",\"references\":[\"r1\"],\"opportunities\":[\"o1\",\"o2\"]}\n```"

		outline, err := ParsePaper(raw)
		require.NoError(t, err)
		assert.Equal(t, "An abstract", outline.Abstract)
		assert.Equal(t, []string{"r1"}, outline.References)
		assert.Equal(t, []string{"o1", "o2"}, outline.Opportunities)
	})

	t.Run("absent lists come back empty", func(t *testing.T) {
		outline, err := ParsePaper(`{"abstract": "only the abstract"}`)
		require.NoError(t, err)
		assert.NotNil(t, outline.References)
		assert.Empty(t, outline.References)
		assert.NotNil(t, outline.Opportunities)
		assert.Empty(t, outline.Opportunities)
	})

	t.Run("missing abstract key is a parse error", func(t *testing.T) {
		_, err := ParsePaper(`{"summary": "nope"}`)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindParse))
	})
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```  \n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.raw))
		})
	}
}
