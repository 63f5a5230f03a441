package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"chatwidget/internal/model"
	"chatwidget/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the /api/chat contract with canned replies. It exists
// so the widget can be exercised without the real backend.
type ChatHandler struct {
	replier     Replier
	cache       *replyCache
	limiter     *clientLimiter
	development bool
	modelName   string

	mu       sync.Mutex
	apiCalls int
	lastCall *time.Time
}

type Options struct {
	RateLimitPerMinute int
	CacheTTL           time.Duration
	CacheSize          int
	Development        bool
}

func NewChatHandler(replier Replier, opts Options) *ChatHandler {
	return &ChatHandler{
		replier:     replier,
		cache:       newReplyCache(opts.CacheTTL, opts.CacheSize),
		limiter:     newClientLimiter(opts.RateLimitPerMinute),
		development: opts.Development,
		modelName:   "stub",
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, model.ChatResponse{Error: "Rate limit exceeded. Please try again later."})
		return
	}

	start := time.Now()
	h.trackCall(start)

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ChatResponse{Error: "Please enter a valid question"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, model.ChatResponse{Error: "Please enter a valid question"})
		return
	}

	if cached, ok := h.cache.Get(query); ok {
		logger.Infof("Cache hit for query: %s...", truncate(query, 30))
		c.JSON(http.StatusOK, model.ChatResponse{Response: cached, Cached: true})
		return
	}

	logger.Infof("Processing query: %s...", truncate(query, 30))

	reply, err := h.replier.Reply(query)
	if err != nil {
		logger.Errorf("Error generating response: %v", err)
		resp := model.ChatResponse{Error: "Failed to get shopping recommendations"}
		if h.development {
			resp.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	if reply != "" {
		h.cache.Set(query, reply)
	}

	logger.Infof("Query processed in %.2f seconds", time.Since(start).Seconds())
	c.JSON(http.StatusOK, model.ChatResponse{Response: reply})
}

func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Model:     h.modelName,
	})
}

func (h *ChatHandler) Stats(c *gin.Context) {
	h.mu.Lock()
	stats := model.StatsResponse{APICalls: h.apiCalls, LastAPICall: h.lastCall}
	h.mu.Unlock()

	c.JSON(http.StatusOK, stats)
}

func (h *ChatHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.ChatResponse{Error: "Resource not found"})
}

func (h *ChatHandler) Recover(c *gin.Context, recovered interface{}) {
	logger.Errorf("Internal server error: %v", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, model.ChatResponse{Error: "An internal server error occurred"})
}

func (h *ChatHandler) trackCall(at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.apiCalls++
	h.lastCall = &at
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
