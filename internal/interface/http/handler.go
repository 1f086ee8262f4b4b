package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/news-digest/internal/domain/newsdigest"
)

// Identity reported by the health endpoint.
const (
	ServiceName    = "News Retrieval & Summarization Agent"
	ServiceVersion = "1.0"
)

// Handler wires the HTTP transport to the digest service.
type Handler struct {
	digestSvc   newsdigest.Service
	uiAssetPath string
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(digestSvc newsdigest.Service, uiAssetPath UIAssetPath, logger *slog.Logger) *Handler {
	return &Handler{
		digestSvc:   digestSvc,
		uiAssetPath: string(uiAssetPath),
		logger:      logger.With("component", "http.handler"),
	}
}

// UIAssetPath is the file served verbatim on /ui.
type UIAssetPath string

// Health reports liveness without touching any upstream.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

// Home returns the fixed greeting.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "News Retrieval Agent is running 🚀"})
}

// UI serves the static page, read from disk on every request.
func (h *Handler) UI(c *gin.Context) {
	page, err := os.ReadFile(h.uiAssetPath)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "ui_unavailable", errMessage(err), err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Summarize fetches news for a topic and returns the LLM summary.
// GET reads topic and limit from the query string, POST from a JSON body.
func (h *Handler) Summarize(c *gin.Context) {
	var (
		req newsdigest.Request
		err error
	)
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.digestSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, summarizeError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
