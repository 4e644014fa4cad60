package prompt

import (
	"fmt"
	"strings"
)

// Builders assemble instruction-formatted prompts. They are pure string
// assembly: retrieval happens in the service layer and the flattened
// context text is passed in, which keeps the builders trivially testable.

// IdeaBuilder produces the idea-generation prompt. Every domain string and
// the specifications appear verbatim in the output so the model grounds on
// exactly what the user typed.
type IdeaBuilder struct {
	domains        []string
	specifications string
	contextText    string
}

func NewIdeaBuilder(domains []string, specifications, contextText string) *IdeaBuilder {
	return &IdeaBuilder{
		domains:        domains,
		specifications: specifications,
		contextText:    contextText,
	}
}

func (b *IdeaBuilder) Build() string {
	var p strings.Builder

	p.WriteString("[INST]\n")
	p.WriteString("As an AI research consultant, generate creative business ideas based on the following:\n\n")
	fmt.Fprintf(&p, "Domains: %s\n", strings.Join(b.domains, ", "))
	fmt.Fprintf(&p, "User Specifications: %s\n\n", b.specifications)
	writeContext(&p, b.contextText)
	p.WriteString("Provide your response in JSON format with the following structure:\n")
	p.WriteString(`{
    "ideas": [
        {
            "title": "Idea title",
            "description": "Brief description",
            "opportunities": ["opp1", "opp2", ...],
            "drawbacks": ["drawback1", "drawback2", ...],
            "references": ["ref1", "ref2", ...],
            "paper_url": "URL of the reference paper"
        }
    ]
}`)
	p.WriteString("\n\nGenerate 3 innovative ideas that combine elements from the specified domains.\n")
	p.WriteString("Include URLs for reference papers where available from the context.\n")
	p.WriteString("[/INST]\n")

	return p.String()
}

// PaperBuilder produces the paper-outline prompt from the developed idea
// and its topics.
type PaperBuilder struct {
	idea        string
	topics      string
	contextText string
}

func NewPaperBuilder(idea, topics, contextText string) *PaperBuilder {
	return &PaperBuilder{
		idea:        idea,
		topics:      topics,
		contextText: contextText,
	}
}

func (b *PaperBuilder) Build() string {
	var p strings.Builder

	p.WriteString("[INST]\n")
	p.WriteString("Generate a complete research paper outline based on the following idea and topics:\n\n")
	fmt.Fprintf(&p, "Idea: %s\n", b.idea)
	fmt.Fprintf(&p, "Topics: %s\n\n", b.topics)
	writeContext(&p, b.contextText)
	p.WriteString("Provide your response in JSON format with the following structure:\n")
	p.WriteString(`{
    "abstract": "Detailed abstract of the proposed research",
    "references": ["ref1", "ref2", ...],
    "opportunities": ["innovation1", "innovation2", ...]
}`)
	p.WriteString("\n[/INST]\n")

	return p.String()
}

// ChatBuilder produces the free-form explore prompt. No JSON schema is
// requested; the reply is rendered as-is.
type ChatBuilder struct {
	userMessage string
	contextText string
}

func NewChatBuilder(userMessage, contextText string) *ChatBuilder {
	return &ChatBuilder{
		userMessage: userMessage,
		contextText: contextText,
	}
}

func (b *ChatBuilder) Build() string {
	var p strings.Builder

	p.WriteString("[INST]\n")
	writeContext(&p, b.contextText)
	fmt.Fprintf(&p, "User question: %s\n\n", b.userMessage)
	p.WriteString("Provide a helpful and informative response.\n")
	p.WriteString("[/INST]\n")

	return p.String()
}

func writeContext(p *strings.Builder, contextText string) {
	p.WriteString("Consider this relevant context:\n")
	p.WriteString(contextText)
	p.WriteString("\n")
}
