package models

import "time"

// UploadStatus represents the state of a queued ingestion file.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "PENDING"
	UploadStatusProcessing UploadStatus = "PROCESSING"
	UploadStatusCompleted  UploadStatus = "COMPLETED"
	UploadStatusError      UploadStatus = "ERROR"
)

// UploadQueueItem tracks per-file ingestion progress. Items live in
// memory for the duration of the process; they are not persisted.
type UploadQueueItem struct {
	ID                 string       `json:"id"`
	FileName           string       `json:"fileName"`
	Status             UploadStatus `json:"status"`
	TotalCasesDetected int          `json:"totalCasesDetected"`
	ProcessedCases     int          `json:"processedCases"`
	Message            string       `json:"message,omitempty"`
	Error              string       `json:"error,omitempty"`
	EnqueuedAt         time.Time    `json:"enqueuedAt"`
}
