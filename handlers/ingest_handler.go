package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/tzathaw95-arch/Myanlex/service"
	"github.com/tzathaw95-arch/Myanlex/store"

	"github.com/gin-gonic/gin"
)

// IngestHandler handles HTTP requests for the ingestion pipeline
type IngestHandler struct {
	ingest      *service.IngestService
	cases       *store.CaseStore
	maxFileSize int64
}

// NewIngestHandler creates a new ingestion handler
func NewIngestHandler(ingest *service.IngestService, cases *store.CaseStore) *IngestHandler {
	return &IngestHandler{
		ingest:      ingest,
		cases:       cases,
		maxFileSize: 50 * 1024 * 1024, // 50MB; report volumes run large
	}
}

// allowedUpload accepts PDFs and plain text.
func allowedUpload(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".txt")
}

// Upload handles POST /api/admin/ingest. Accepts one or more files
// under the "files" form field and enqueues each for processing.
func (h *IngestHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FORM",
				"message": err.Error(),
			},
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "At least one file is required",
			},
		})
		return
	}

	// Validate the whole batch up front so a bad file rejects the
	// request before any of its siblings are enqueued.
	for _, fileHeader := range files {
		if fileHeader.Size > h.maxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FILE_TOO_LARGE",
					"message": fileHeader.Filename + " exceeds the maximum upload size",
				},
			})
			return
		}
		if !allowedUpload(fileHeader.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNSUPPORTED_FILE_TYPE",
					"message": "Only PDF and plain-text files are accepted",
				},
			})
			return
		}
	}

	queueIDs := make([]string, 0, len(files))
	for _, fileHeader := range files {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "READ_FAILED",
					"message": err.Error(),
				},
			})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "READ_FAILED",
					"message": err.Error(),
				},
			})
			return
		}

		queueID, err := h.ingest.Enqueue(c.Request.Context(), fileHeader.Filename, data)
		if err != nil && !errors.Is(err, service.ErrQueueFull) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ENQUEUE_FAILED",
					"message": err.Error(),
				},
			})
			return
		}
		queueIDs = append(queueIDs, queueID)
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success":   true,
		"queue_ids": queueIDs,
	})
}

// Queue handles GET /api/admin/queue
func (h *IngestHandler) Queue(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.ingest.Queue(),
	})
}

// QueueItem handles GET /api/admin/queue/:id
func (h *IngestHandler) QueueItem(c *gin.Context) {
	item, ok := h.ingest.Item(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUEUE_ITEM_NOT_FOUND",
				"message": "Queue item not found",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// Retry handles POST /api/admin/queue/:id/retry: re-enqueues the
// archived copy of a previously processed file.
func (h *IngestHandler) Retry(c *gin.Context) {
	queueID, err := h.ingest.Retry(c.Request.Context(), c.Param("id"))
	if err != nil && !errors.Is(err, service.ErrQueueFull) {
		status := http.StatusInternalServerError
		code := "RETRY_FAILED"
		switch {
		case errors.Is(err, service.ErrQueueItemNotFound):
			status = http.StatusNotFound
			code = "QUEUE_ITEM_NOT_FOUND"
		case errors.Is(err, service.ErrQueueItemActive):
			status = http.StatusConflict
			code = "QUEUE_ITEM_ACTIVE"
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
	c.JSON(http.StatusAccepted, gin.H{
		"success":  true,
		"queue_id": queueID,
	})
}

// RemoveQueueItem handles DELETE /api/admin/queue/:id: drops a finished
// item and its archived source file.
func (h *IngestHandler) RemoveQueueItem(c *gin.Context) {
	err := h.ingest.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "REMOVE_FAILED"
		switch {
		case errors.Is(err, service.ErrQueueItemNotFound):
			status = http.StatusNotFound
			code = "QUEUE_ITEM_NOT_FOUND"
		case errors.Is(err, service.ErrQueueItemActive):
			status = http.StatusConflict
			code = "QUEUE_ITEM_ACTIVE"
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
	})
}

// Reset handles POST /api/admin/reset: restores the built-in seed set.
func (h *IngestHandler) Reset(c *gin.Context) {
	h.cases.Clear()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   h.cases.Count(),
	})
}
