package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Models selectable from the browser config panel. The first entry is the
// session default.
var Models = []string{
	"mistral-large2",
	"llama3.1-70b",
	"llama3.1-8b",
}

// IsKnownModel reports whether name is one of the selectable models
func IsKnownModel(name string) bool {
	for _, m := range Models {
		if m == name {
			return true
		}
	}
	return false
}

// Retrieval request shape shared by every generation path: the same columns
// and language restriction are asked of the index regardless of use case.
var (
	SearchColumns = []string{"chunk", "file_url", "relative_path"}
)

const (
	SearchDisplayColumn = "chunk"
	SearchLanguageKey   = "language"
	SearchLanguage      = "English"
)
