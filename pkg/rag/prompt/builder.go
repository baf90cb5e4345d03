package prompt

import (
	"fmt"
	"strings"

	"kb-assist-be/pkg/retrieval"
)

// GroundedBuilder builds an answer-synthesis prompt from retrieved
// knowledge-base passages.
type GroundedBuilder struct {
	query      string
	candidates []retrieval.Candidate
}

// NewGroundedBuilder creates a prompt builder for one question
func NewGroundedBuilder(query string, candidates []retrieval.Candidate) *GroundedBuilder {
	return &GroundedBuilder{
		query:      query,
		candidates: candidates,
	}
}

// Build creates a prompt that keeps the model grounded in the retrieved
// passages instead of its own knowledge
func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	b.writeReferenceMaterial(&prompt)
	b.writeTask(&prompt)
	b.writeGuidelines(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *GroundedBuilder) writeReferenceMaterial(prompt *strings.Builder) {
	if len(b.candidates) == 0 {
		return
	}

	prompt.WriteString("<reference_material>\n")
	for i, c := range b.candidates {
		prompt.WriteString(fmt.Sprintf("--- Source %d: %s", i+1, c.DocumentID))
		if c.Header != "" {
			prompt.WriteString(" | " + c.Header)
		}
		prompt.WriteString(" ---\n")
		prompt.WriteString(c.Content)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("</reference_material>\n\n")
}

func (b *GroundedBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a knowledgeable assistant helping the user understand and extract information from their personal knowledge base.\n")
	prompt.WriteString("Your goal is to answer their question using only the reference material above.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *GroundedBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Base your answer strictly on the reference material provided\n")
	prompt.WriteString("2. When sources disagree, prefer the one most specific to the question\n")
	prompt.WriteString("3. Be complete - don't skip relevant information from the material\n")
	prompt.WriteString("4. Mention which source a fact came from when it matters\n")
	prompt.WriteString("5. If the material doesn't contain what's being asked, say so honestly\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *GroundedBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Now provide your complete response based on the reference material:")
}
