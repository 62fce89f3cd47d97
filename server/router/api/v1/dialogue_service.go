package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/northernisles/sage/server/dialogue"
)

// AddMessageRequest is the payload for POST /api/v1/messages.
type AddMessageRequest struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"` // RFC3339, optional
}

// AddMessageResponse reports the post-append (and post-trim) token count.
type AddMessageResponse struct {
	Status     string `json:"status"`
	TokenCount int    `json:"token_count"`
}

// AddMessage appends a message to the conversation context.
// POST /api/v1/messages
func (s *APIV1Service) AddMessage(c echo.Context) error {
	var req AddMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	role, err := dialogue.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content must not be empty"})
	}

	var ts time.Time
	if req.Timestamp != "" {
		ts, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "timestamp must be RFC3339"})
		}
	}

	tokenCount, err := s.Store.Append(role, req.Content, ts)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, AddMessageResponse{Status: "success", TokenCount: tokenCount})
}

// GetContext returns the raw conversation state.
// GET /api/v1/context
func (s *APIV1Service) GetContext(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Store.Snapshot())
}

// SummarizeHistoryResponse wraps the human-readable context digest.
type SummarizeHistoryResponse struct {
	Summary string `json:"summary"`
}

// SummarizeHistory returns the context digest: rolling summary plus the most
// recent messages in truncated form.
// GET /api/v1/context/summary
func (s *APIV1Service) SummarizeHistory(c echo.Context) error {
	if s.Store.MessageCount() == 0 {
		return c.JSON(http.StatusOK, SummarizeHistoryResponse{Summary: "No conversation to summarize."})
	}
	return c.JSON(http.StatusOK, SummarizeHistoryResponse{Summary: s.Store.ContextDigest()})
}

// ResetConversation clears messages and the rolling summary.
// POST /api/v1/context/reset
func (s *APIV1Service) ResetConversation(c echo.Context) error {
	s.Store.Reset()
	slog.Info("conversation context reset")
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// SearchKnowledgeRequest is the payload for POST /api/v1/knowledge/search.
type SearchKnowledgeRequest struct {
	Query string `json:"query"`
}

// SearchKnowledgeResponse carries the resolved snippet and its source.
type SearchKnowledgeResponse struct {
	Status string                   `json:"status"`
	Query  string                   `json:"query"`
	Result string                   `json:"result"`
	Source dialogue.KnowledgeSource `json:"source"`
}

// SearchKnowledge resolves a query against the static table and Wikipedia.
// Always succeeds; a failed lookup degrades to the placeholder result.
// POST /api/v1/knowledge/search
func (s *APIV1Service) SearchKnowledge(c echo.Context) error {
	var req SearchKnowledgeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	result := s.Resolver.Resolve(c.Request().Context(), req.Query)
	return c.JSON(http.StatusOK, SearchKnowledgeResponse{
		Status: "success",
		Query:  result.Query,
		Result: result.Text,
		Source: result.Source,
	})
}

// HealthStatusResponse reports liveness and conversation state counters.
type HealthStatusResponse struct {
	Status          string   `json:"status"`
	MessagesCount   int      `json:"messages_count"`
	SummaryExists   bool     `json:"summary_exists"`
	KnowledgeTopics []string `json:"knowledge_topics"`
}

// GetHealthStatus reports server health.
// GET /api/v1/health
func (s *APIV1Service) GetHealthStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatusResponse{
		Status:          "healthy",
		MessagesCount:   s.Store.MessageCount(),
		SummaryExists:   s.Store.HasSummary(),
		KnowledgeTopics: s.Resolver.Topics(),
	})
}

// ProcessDialogueRequest is the payload for POST /api/v1/dialogue.
type ProcessDialogueRequest struct {
	Content string `json:"content"`
}

// ProcessDialogue runs a full dialogue turn through the orchestrator.
// POST /api/v1/dialogue
func (s *APIV1Service) ProcessDialogue(c echo.Context) error {
	var req ProcessDialogueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if !s.limiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
	}

	ctx := c.Request().Context()
	if err := s.turnSemaphore.Acquire(ctx, 1); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "request cancelled"})
	}
	defer s.turnSemaphore.Release(1)

	result, err := s.Orchestrator.Process(ctx, req.Content)
	if err != nil {
		if errors.Is(err, dialogue.ErrEmptyUtterance) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		slog.Error("dialogue turn failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, result)
}
