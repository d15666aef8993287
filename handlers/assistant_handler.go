package handlers

import (
	"errors"
	"net/http"

	"github.com/tzathaw95-arch/Myanlex/service"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles HTTP requests for the research assistant
// and the citation network analyzer
type AssistantHandler struct {
	assistant *service.AssistantService
	citations *service.CitationService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *service.AssistantService, citations *service.CitationService) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		citations: citations,
	}
}

// ChatRequest is the research-question request body.
type ChatRequest struct {
	Query  string `json:"query" binding:"required"`
	CaseID string `json:"case_id"`
}

// Chat handles POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.Query, req.CaseID)
	if err != nil {
		status := http.StatusBadGateway
		code := "ASSISTANT_FAILED"
		if errors.Is(err, service.ErrCaseNotFound) {
			status = http.StatusNotFound
			code = "CASE_NOT_FOUND"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"answer": answer},
	})
}

// CompareRequest is the multi-case analysis request body.
type CompareRequest struct {
	CaseIDs      []string `json:"case_ids" binding:"required"`
	Mode         string   `json:"mode" binding:"required"`
	CustomPrompt string   `json:"custom_prompt"`
}

// Compare handles POST /api/analysis/compare
func (h *AssistantHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.assistant.Compare(c.Request.Context(), req.CaseIDs, service.AnalysisMode(req.Mode), req.CustomPrompt)
	if err != nil {
		status := http.StatusBadGateway
		code := "ANALYSIS_FAILED"
		switch {
		case errors.Is(err, service.ErrCaseNotFound):
			status = http.StatusNotFound
			code = "CASE_NOT_FOUND"
		case errors.Is(err, service.ErrNoCasesSelected):
			status = http.StatusBadRequest
			code = "NO_CASES_SELECTED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"analysis": result},
	})
}

// AnalyzeCitations handles POST /api/admin/analyze-citations. The
// batch is all-or-nothing; on failure nothing is updated and the
// caller should check their quota.
func (h *AssistantHandler) AnalyzeCitations(c *gin.Context) {
	updated, err := h.citations.AnalyzeNetwork(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": "Citation analysis failed, check API quota: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": updated,
	})
}
