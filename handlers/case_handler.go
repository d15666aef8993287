package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/tzathaw95-arch/Myanlex/models"
	"github.com/tzathaw95-arch/Myanlex/service"
	"github.com/tzathaw95-arch/Myanlex/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler handles HTTP requests for case records
type CaseHandler struct {
	cases      *store.CaseStore
	extraction *service.ExtractionService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(cases *store.CaseStore, extraction *service.ExtractionService) *CaseHandler {
	return &CaseHandler{
		cases:      cases,
		extraction: extraction,
	}
}

// SearchCases handles GET /api/cases
func (h *CaseHandler) SearchCases(c *gin.Context) {
	query := c.Query("q")
	results := h.cases.Search(query)

	// Optional facet filters applied after the text query.
	court := c.Query("court")
	year := c.Query("year")
	caseType := c.Query("type")
	if court != "" || year != "" || caseType != "" {
		filtered := results[:0:0]
		for _, record := range results {
			if court != "" && !strings.EqualFold(record.Court, court) {
				continue
			}
			if year != "" && !strings.HasPrefix(record.Date, year) {
				continue
			}
			if caseType != "" && !strings.EqualFold(record.CaseType, caseType) {
				continue
			}
			filtered = append(filtered, record)
		}
		results = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"count":   len(results),
	})
}

// GetCategories handles GET /api/cases/categories
func (h *CaseHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.cases.Categories(),
	})
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	record := h.cases.GetByID(c.Param("id"))
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CASE_NOT_FOUND",
				"message": "Case not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// CreateCase handles POST /api/cases (manual admin entry)
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var record models.LegalCase
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if record.CaseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_CASE_NAME",
				"message": "caseName is required",
			},
		})
		return
	}

	record.ID = "case-" + uuid.NewString()
	record.SourcePDFName = models.ManualEntrySource
	record.ExtractionDate = time.Now().UTC()
	record.ExtractionConfidence = 100
	record.ExtractedSuccessfully = true
	if !record.Status.Valid() {
		record.Status = models.StatusGoodLaw
	}
	normalizeCollections(&record)

	h.cases.Save(&record)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

// UpdateCase handles PUT /api/cases/:id. Edits do not re-derive the
// summary/holding/brief from the content.
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	id := c.Param("id")
	existing := h.cases.GetByID(id)
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CASE_NOT_FOUND",
				"message": "Case not found",
			},
		})
		return
	}

	var record models.LegalCase
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	record.ID = id
	if !record.Status.Valid() {
		record.Status = existing.Status
	}
	normalizeCollections(&record)

	h.cases.Save(&record)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// DeleteCase handles DELETE /api/cases/:id
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	h.cases.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// AnalyzeTextRequest is the paste-and-analyze request body.
type AnalyzeTextRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceName string `json:"source_name"`
}

// AnalyzeText handles POST /api/cases/analyze-text: single-shot
// extraction of pasted judgment text, persisted on success.
func (h *CaseHandler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
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

	sourceName := req.SourceName
	if sourceName == "" {
		sourceName = models.ManualEntrySource
	}

	record, err := h.extraction.ExtractCase(c.Request.Context(), req.Text, sourceName, 0)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXTRACTION_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	h.cases.Save(record)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

// normalizeCollections replaces nil slices so records never carry
// nulls into storage or responses.
func normalizeCollections(record *models.LegalCase) {
	if record.Judges == nil {
		record.Judges = models.StringList{}
	}
	if record.Headnotes == nil {
		record.Headnotes = models.StringList{}
	}
	if record.LegalIssues == nil {
		record.LegalIssues = models.StringList{}
	}
}
