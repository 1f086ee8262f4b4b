package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/news-digest/internal/domain/newsdigest"
	"github.com/yanqian/news-digest/internal/infra/llm/chatgpt"
	"github.com/yanqian/news-digest/internal/infra/news/newsapi"
	"github.com/yanqian/news-digest/pkg/metrics"
)

// upstreams fakes the news provider and the chat completion API.
type upstreams struct {
	news       *httptest.Server
	llm        *httptest.Server
	newsHits   atomic.Int32
	llmHits    atomic.Int32
	lastPrompt atomic.Value
}

func newUpstreams(t *testing.T, newsStatus int, newsBody string) *upstreams {
	t.Helper()
	u := &upstreams{}
	u.news = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.newsHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(newsStatus)
		_, _ = w.Write([]byte(newsBody))
	}))
	u.llm = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.llmHits.Add(1)
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 {
			u.lastPrompt.Store(req.Messages[0].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Australia edged ahead after a tense first session."},"finish_reason":"stop"}],"usage":{"prompt_tokens":90,"completion_tokens":12,"total_tokens":102}}`))
	}))
	t.Cleanup(func() {
		u.news.Close()
		u.llm.Close()
	})
	return u
}

func (u *upstreams) server(t *testing.T, missingCredential string) *http.Server {
	t.Helper()
	fetcher := newsapi.NewClient(newsapi.Options{APIKey: "news-key", BaseURL: u.news.URL, Timeout: time.Second})
	chat := chatgpt.NewClient("llm-key", u.llm.URL, time.Second)
	svc := newsdigest.NewService(newsdigest.Config{
		DefaultLimit:      5,
		MaxLimit:          100,
		Model:             "gpt-4o-mini",
		Temperature:       0.3,
		MissingCredential: missingCredential,
	}, fetcher, chat, estimateCounter{}, newTestLogger())
	return newRouterUnderTest(t, svc, "")
}

type estimateCounter struct{}

func (estimateCounter) Count(text string) int { return metrics.EstimateTokens(text) }

func TestSummarizeFlow_LimitAppliedToPrompt(t *testing.T) {
	u := newUpstreams(t, http.StatusOK, newsPayload(5))

	recorder := performRequest(http.MethodPost, "/summarize", `{"topic":"Ashes Cricket","limit":3}`, u.server(t, ""))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got newsdigest.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Ashes Cricket", got.Topic)
	require.NotEmpty(t, got.Summary)
	require.Equal(t, 3, got.ArticleCount)

	require.EqualValues(t, 1, u.newsHits.Load())
	require.EqualValues(t, 1, u.llmHits.Load())
	prompt, _ := u.lastPrompt.Load().(string)
	require.Equal(t, 3, strings.Count(prompt, "\nTitle: "))
}

func TestSummarizeFlow_NoArticles(t *testing.T) {
	u := newUpstreams(t, http.StatusOK, `{"status":"ok","totalResults":0,"articles":[]}`)

	recorder := performRequest(http.MethodGet, "/summarize?topic=nothing+happening", "", u.server(t, ""))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"topic":"nothing happening","summary":"No relevant news articles found."}`, recorder.Body.String())
	require.Zero(t, u.llmHits.Load())
}

func TestSummarizeFlow_MissingNewsCredential(t *testing.T) {
	u := newUpstreams(t, http.StatusOK, newsPayload(2))

	recorder := performRequest(http.MethodPost, "/summarize", `{"topic":"go"}`, u.server(t, "NEWS_API_KEY"))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "NEWS_API_KEY not configured", decodeErrorBody(t, recorder.Body.Bytes())["detail"])
	require.Zero(t, u.newsHits.Load())
	require.Zero(t, u.llmHits.Load())
}

func TestSummarizeFlow_ProviderUnavailable(t *testing.T) {
	u := newUpstreams(t, http.StatusServiceUnavailable, `{"status":"error","code":"unexpectedError"}`)

	recorder := performRequest(http.MethodPost, "/summarize", `{"topic":"go"}`, u.server(t, ""))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "provider_error", body["code"])
	require.Contains(t, body["detail"], "503")
	require.Zero(t, u.llmHits.Load())
}

func TestSummarizeFlow_EmptyTopicRejected(t *testing.T) {
	u := newUpstreams(t, http.StatusOK, newsPayload(2))

	recorder := performRequest(http.MethodPost, "/summarize", `{"topic":""}`, u.server(t, ""))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Zero(t, u.newsHits.Load())
	require.Zero(t, u.llmHits.Load())
}

func TestSummarizeFlow_HealthIgnoresCredentials(t *testing.T) {
	u := newUpstreams(t, http.StatusOK, newsPayload(1))

	recorder := performRequest(http.MethodGet, "/health", "", u.server(t, "OPENAI_API_KEY"))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok","service":"News Retrieval & Summarization Agent","version":"1.0"}`, recorder.Body.String())
}

func newsPayload(n int) string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf(`{"title":"Ashes day %d","description":"Report from day %d."}`, i, i))
	}
	return fmt.Sprintf(`{"status":"ok","totalResults":%d,"articles":[%s]}`, n, strings.Join(items, ","))
}
