package main

import (
	"github.com/yanqian/news-digest/internal/domain/newsdigest"
	"github.com/yanqian/news-digest/internal/infra/config"
	"github.com/yanqian/news-digest/internal/infra/llm/chatgpt"
	"github.com/yanqian/news-digest/internal/infra/news/newsapi"
	httpiface "github.com/yanqian/news-digest/internal/interface/http"
	"github.com/yanqian/news-digest/pkg/metrics"
)

func provideDigestConfig(cfg *config.Config) newsdigest.Config {
	return newsdigest.Config{
		DefaultLimit:      cfg.News.DefaultLimit,
		MaxLimit:          cfg.News.MaxLimit,
		Model:             cfg.LLM.Model,
		Temperature:       cfg.LLM.Temperature,
		MissingCredential: cfg.MissingCredential(),
	}
}

func provideNewsClient(cfg *config.Config) *newsapi.Client {
	return newsapi.NewClient(newsapi.Options{
		APIKey:   cfg.News.APIKey,
		BaseURL:  cfg.News.BaseURL,
		Language: cfg.News.Language,
		SortBy:   cfg.News.SortBy,
		Timeout:  cfg.News.Timeout,
	})
}

func provideChatGPTClient(cfg *config.Config) *chatgpt.Client {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideTokenCounter(cfg *config.Config) *metrics.TokenCounter {
	return metrics.NewTokenCounter(cfg.LLM.Model)
}

func provideUIAssetPath(cfg *config.Config) httpiface.UIAssetPath {
	return httpiface.UIAssetPath(cfg.UI.AssetPath)
}
