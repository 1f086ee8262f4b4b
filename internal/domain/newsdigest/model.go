package newsdigest

import "github.com/yanqian/news-digest/pkg/metrics"

// NoArticlesSummary is returned instead of an LLM summary when the provider has nothing on the topic.
const NoArticlesSummary = "No relevant news articles found."

// Config configures the digest pipeline.
type Config struct {
	DefaultLimit int
	MaxLimit     int
	Model        string
	Temperature  float32
	// MissingCredential names an unset upstream credential, or is empty when
	// both are configured.
	MissingCredential string
}

// Request represents the inbound summarize payload, from a JSON body or query string.
type Request struct {
	Topic string `json:"topic" form:"topic"`
	Limit int    `json:"limit,omitempty" form:"limit"`
}

// Response is the only success payload of the summarize operation.
type Response struct {
	Topic        string              `json:"topic"`
	Summary      string              `json:"summary"`
	ArticleCount int                 `json:"articleCount,omitempty"`
	TokenUsage   *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// Article is the stripped view of a provider record used to build prompts.
type Article struct {
	Title       string
	Description string
}
