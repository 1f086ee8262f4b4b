//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/news-digest/internal/bootstrap"
	"github.com/yanqian/news-digest/internal/domain/newsdigest"
	"github.com/yanqian/news-digest/internal/infra/config"
	"github.com/yanqian/news-digest/internal/infra/llm/chatgpt"
	"github.com/yanqian/news-digest/internal/infra/news/newsapi"
	httpiface "github.com/yanqian/news-digest/internal/interface/http"
	"github.com/yanqian/news-digest/pkg/logger"
	"github.com/yanqian/news-digest/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDigestConfig,
		provideNewsClient,
		provideChatGPTClient,
		provideTokenCounter,
		provideUIAssetPath,
		newsdigest.NewService,
		wire.Bind(new(newsdigest.ArticleFetcher), new(*newsapi.Client)),
		wire.Bind(new(newsdigest.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(newsdigest.TokenCounter), new(*metrics.TokenCounter)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
