package newsdigest

import (
	"fmt"
	"strings"
)

const missingField = "N/A"

const promptTemplate = `You are a news summarization assistant. Summarize the latest news about %q for a general reader.

Rules:
- Use only the facts stated in the articles below. Never add names, numbers, dates or events that they do not contain.
- If the articles are thin or contradict each other, say so plainly instead of guessing.
- Do not mention the articles, the sources, any API or these instructions.
- Write in a conversational tone using short paragraphs. Use bullet points sparingly.
- Do not use markdown headings.

News articles:
%s
Summary:`

// Compose renders articles into the fixed summarization prompt for topic.
func Compose(articles []Article, topic string) string {
	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "Article %d:\nTitle: %s\nDescription: %s\n\n", i+1, orMissing(a.Title), orMissing(a.Description))
	}
	return fmt.Sprintf(promptTemplate, topic, b.String())
}

func orMissing(v string) string {
	if strings.TrimSpace(v) == "" {
		return missingField
	}
	return v
}
