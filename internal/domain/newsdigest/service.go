package newsdigest

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yanqian/news-digest/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/news-digest/pkg/errors"
	"github.com/yanqian/news-digest/pkg/metrics"
)

var tracer = otel.Tracer("newsdigest")

// Service exposes the topic summarization capability.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

// ArticleFetcher returns up to limit articles about topic, in relevance order.
// An empty result with a nil error means the provider has no news on the topic.
type ArticleFetcher interface {
	Fetch(ctx context.Context, topic string, limit int) ([]Article, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type TokenCounter interface {
	Count(text string) int
}

type service struct {
	cfg     Config
	fetcher ArticleFetcher
	client  ChatClient
	tokens  TokenCounter
	logger  *slog.Logger
}

// NewService wires up the digest pipeline.
func NewService(cfg Config, fetcher ArticleFetcher, client ChatClient, tokens TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		fetcher: fetcher,
		client:  client,
		tokens:  tokens,
		logger:  logger.With("component", "newsdigest.service"),
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	topic := normalize(req.Topic)
	if topic == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "topic cannot be empty", nil)
	}
	if missing := s.cfg.MissingCredential; missing != "" {
		return Response{}, apperrors.Wrap(apperrors.CodeConfig, missing+" not configured", nil)
	}
	limit := s.resolveLimit(req.Limit)

	articles, err := s.fetch(ctx, topic, limit)
	if err != nil {
		metrics.RecordDigest(metrics.DigestFailed)
		return Response{}, apperrors.Wrap(apperrors.CodeProvider, "news provider request failed", err)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	if len(articles) == 0 {
		s.logger.Info("no articles found", "topic", topic)
		metrics.RecordDigest(metrics.DigestEmpty)
		return Response{Topic: topic, Summary: NoArticlesSummary}, nil
	}

	prompt := Compose(articles, topic)
	promptTokens := s.tokens.Count(prompt)
	metrics.ObservePromptTokens(promptTokens)
	s.logger.Info("summarizing articles", "topic", topic, "articles", len(articles), "limit", limit, "prompt_tokens", promptTokens)

	summary, usage, err := s.summarize(ctx, prompt)
	if err != nil {
		metrics.RecordDigest(metrics.DigestFailed)
		return Response{}, err
	}
	metrics.RecordDigest(metrics.DigestSummarized)

	resp := Response{
		Topic:        topic,
		Summary:      summary,
		ArticleCount: len(articles),
	}
	if !usage.IsZero() {
		resp.TokenUsage = &usage
	}
	return resp, nil
}

func (s *service) fetch(ctx context.Context, topic string, limit int) ([]Article, error) {
	ctx, span := tracer.Start(ctx, "newsdigest.fetch", trace.WithAttributes(
		attribute.String("news.topic", topic),
		attribute.Int("news.limit", limit),
	))
	defer span.End()

	articles, err := s.fetcher.Fetch(ctx, topic, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("news.articles", len(articles)))
	return articles, nil
}

func (s *service) summarize(ctx context.Context, prompt string) (string, metrics.TokenUsage, error) {
	ctx, span := tracer.Start(ctx, "newsdigest.summarize", trace.WithAttributes(
		attribute.String("llm.model", s.cfg.Model),
	))
	defer span.End()

	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", metrics.TokenUsage{}, apperrors.Wrap(apperrors.CodeLLM, "chatgpt request failed", err)
	}
	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, "no choices")
		return "", metrics.TokenUsage{}, apperrors.Wrap(apperrors.CodeLLM, "chatgpt returned no choices", nil)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", metrics.TokenUsage{}, apperrors.Wrap(apperrors.CodeLLM, "chatgpt returned an empty summary", nil)
	}
	s.logger.Debug("chatgpt response received", "content", content)
	return content, resp.Usage, nil
}

func (s *service) resolveLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
