package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/tzathaw95-arch/Myanlex/ingest"
	"github.com/tzathaw95-arch/Myanlex/models"
	"github.com/tzathaw95-arch/Myanlex/storage"

	"github.com/google/uuid"
)

// CaseExtractor is the structured-extraction boundary, satisfied by
// ExtractionService and mocked in tests.
type CaseExtractor interface {
	ExtractCase(ctx context.Context, caseText, sourceName string, ordinalIndex int) (*models.LegalCase, error)
	ExtractCasesFromImages(ctx context.Context, jpegPages [][]byte, sourceName string) ([]*models.LegalCase, error)
}

// RecordStore is the write surface the pipeline persists into.
type RecordStore interface {
	Save(c *models.LegalCase)
}

var (
	ErrQueueFull         = errors.New("ingestion queue is full")
	ErrQueueItemNotFound = errors.New("queue item not found")
	ErrQueueItemActive   = errors.New("queue item is still pending or processing")
)

const defaultQueueCapacity = 32

type ingestJob struct {
	itemID   string
	fileName string
	data     []byte
}

// IngestService drives the per-file pipeline: queue items through
// PENDING -> PROCESSING -> {COMPLETED, ERROR}, choosing the text or
// vision path per file and persisting each structured case as it
// completes. Files are processed strictly one at a time; chunk pacing
// against the provider is handled by the extraction service's Pacer.
type IngestService struct {
	extractor CaseExtractor
	records   RecordStore
	archive   storage.Storage // optional raw-upload archive

	mu    sync.RWMutex
	items map[string]*models.UploadQueueItem
	paths map[string]string // queue item id -> archive path

	jobs chan ingestJob
}

// IngestServiceOption is a functional option for IngestService
type IngestServiceOption func(*IngestService)

// IngestWithExtractor sets the extraction client
func IngestWithExtractor(extractor CaseExtractor) IngestServiceOption {
	return func(s *IngestService) {
		s.extractor = extractor
	}
}

// IngestWithRecordStore sets the case record store
func IngestWithRecordStore(records RecordStore) IngestServiceOption {
	return func(s *IngestService) {
		s.records = records
	}
}

// IngestWithArchive sets the raw-upload archive storage
func IngestWithArchive(archive storage.Storage) IngestServiceOption {
	return func(s *IngestService) {
		s.archive = archive
	}
}

// NewIngestService creates a new ingestion service
func NewIngestService(opts ...IngestServiceOption) *IngestService {
	s := &IngestService{
		items: make(map[string]*models.UploadQueueItem),
		paths: make(map[string]string),
		jobs:  make(chan ingestJob, defaultQueueCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the single worker goroutine. One worker means queued
// files are each processed fully before the next begins.
func (s *IngestService) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-s.jobs:
				s.processFile(ctx, job)
			}
		}
	}()
}

// Enqueue registers a file for ingestion and returns the queue item
// id. The raw bytes are archived first so a failed file can be re-run.
func (s *IngestService) Enqueue(ctx context.Context, fileName string, data []byte) (string, error) {
	if s.extractor == nil {
		return "", errors.New("extraction client not set")
	}
	if s.records == nil {
		return "", errors.New("record store not set")
	}

	itemID := uuid.NewString()
	item := &models.UploadQueueItem{
		ID:         itemID,
		FileName:   fileName,
		Status:     models.UploadStatusPending,
		EnqueuedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.items[itemID] = item
	s.mu.Unlock()

	if s.archive != nil {
		fileID, err := uuid.Parse(itemID)
		if err == nil {
			path, err := s.archive.Upload(ctx, fileID, fileName, bytes.NewReader(data))
			if err != nil {
				log.Printf("Warning: failed to archive upload %s: %v", fileName, err)
			} else {
				s.mu.Lock()
				s.paths[itemID] = path
				s.mu.Unlock()
			}
		}
	}

	select {
	case s.jobs <- ingestJob{itemID: itemID, fileName: fileName, data: data}:
		return itemID, nil
	default:
		s.updateItem(itemID, models.UploadStatusError, func(it *models.UploadQueueItem) {
			it.Error = ErrQueueFull.Error()
		})
		return itemID, ErrQueueFull
	}
}

// Queue returns a snapshot of all queue items, newest first.
func (s *IngestService) Queue() []models.UploadQueueItem {
	s.mu.RLock()
	out := make([]models.UploadQueueItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].EnqueuedAt.After(out[j].EnqueuedAt)
	})
	return out
}

// Item returns a snapshot of one queue item.
func (s *IngestService) Item(id string) (models.UploadQueueItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return models.UploadQueueItem{}, false
	}
	return *item, true
}

// Retry re-runs a finished or failed upload from its archived copy and
// returns the new queue item id. Items still pending or processing
// cannot be retried.
func (s *IngestService) Retry(ctx context.Context, itemID string) (string, error) {
	s.mu.RLock()
	item, ok := s.items[itemID]
	var fileName, path string
	var status models.UploadStatus
	if ok {
		fileName = item.FileName
		status = item.Status
		path = s.paths[itemID]
	}
	s.mu.RUnlock()

	if !ok {
		return "", ErrQueueItemNotFound
	}
	if status == models.UploadStatusPending || status == models.UploadStatusProcessing {
		return "", ErrQueueItemActive
	}
	if s.archive == nil || path == "" {
		return "", fmt.Errorf("no archived copy for queue item %s", itemID)
	}

	rc, err := s.archive.Download(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read archived upload: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read archived upload: %w", err)
	}

	return s.Enqueue(ctx, fileName, data)
}

// Remove drops a finished queue item and deletes its archived copy.
func (s *IngestService) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	item, ok := s.items[itemID]
	if !ok {
		s.mu.Unlock()
		return ErrQueueItemNotFound
	}
	if item.Status == models.UploadStatusPending || item.Status == models.UploadStatusProcessing {
		s.mu.Unlock()
		return ErrQueueItemActive
	}
	path := s.paths[itemID]
	delete(s.items, itemID)
	delete(s.paths, itemID)
	s.mu.Unlock()

	if s.archive != nil && path != "" {
		if err := s.archive.Delete(ctx, path); err != nil {
			log.Printf("Warning: failed to delete archived upload %s: %v", path, err)
		}
	}
	return nil
}

func (s *IngestService) updateItem(id string, status models.UploadStatus, mutate func(*models.UploadQueueItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return
	}
	item.Status = status
	if mutate != nil {
		mutate(item)
	}
}

// processFile runs one file end to end. Per-chunk failures are local;
// per-file failures mark the queue item ERROR without touching other
// queued files.
func (s *IngestService) processFile(ctx context.Context, job ingestJob) {
	s.updateItem(job.itemID, models.UploadStatusProcessing, nil)

	var chunks []string
	useVision := false

	if ingest.IsPDF(job.data) {
		rawText, err := ingest.ExtractText(job.data)
		if err != nil {
			s.failItem(job.itemID, fmt.Errorf("failed to read PDF: %w", err))
			return
		}
		// A scanned or Zawgyi-mangled PDF yields noise; switch to the
		// vision path rather than waste extraction calls on it. The
		// branch is one-way per file.
		if ingest.LooksGarbled(rawText) {
			log.Printf("Warning: %s yielded poor text, switching to vision mode", job.fileName)
			useVision = true
		} else {
			chunks = ingest.SplitCases(rawText)
		}
	} else {
		chunks = ingest.SplitCases(string(job.data))
	}

	if useVision {
		s.processVision(ctx, job)
		return
	}

	s.updateItem(job.itemID, models.UploadStatusProcessing, func(it *models.UploadQueueItem) {
		it.TotalCasesDetected = len(chunks)
	})

	for i, chunk := range chunks {
		if ctx.Err() != nil {
			s.failItem(job.itemID, ctx.Err())
			return
		}

		structured, err := s.extractor.ExtractCase(ctx, chunk, job.fileName, i)
		if err != nil {
			log.Printf("Warning: failed to process case %d in %s: %v", i, job.fileName, err)
			continue
		}

		// Persist immediately so partial success survives a later
		// failure in the same file.
		s.records.Save(structured)
		processed := i + 1
		s.updateItem(job.itemID, models.UploadStatusProcessing, func(it *models.UploadQueueItem) {
			it.ProcessedCases = processed
		})
	}

	s.updateItem(job.itemID, models.UploadStatusCompleted, nil)
}

// processVision renders the page cap once and extracts the whole batch
// in a single call; there is no per-case progress granularity.
func (s *IngestService) processVision(ctx context.Context, job ingestJob) {
	s.updateItem(job.itemID, models.UploadStatusProcessing, func(it *models.UploadQueueItem) {
		it.Message = "Scanning images (OCR)..."
	})

	pages, err := ingest.RenderPages(job.data, ingest.MaxVisionPages)
	if err != nil {
		s.failItem(job.itemID, fmt.Errorf("failed to render pages: %w", err))
		return
	}

	cases, err := s.extractor.ExtractCasesFromImages(ctx, pages, job.fileName)
	if err != nil {
		s.failItem(job.itemID, err)
		return
	}

	for _, c := range cases {
		s.records.Save(c)
	}

	count := len(cases)
	s.updateItem(job.itemID, models.UploadStatusCompleted, func(it *models.UploadQueueItem) {
		it.TotalCasesDetected = count
		it.ProcessedCases = count
		it.Message = ""
	})
}

func (s *IngestService) failItem(id string, err error) {
	log.Printf("Ingestion failed for queue item %s: %v", id, err)
	s.updateItem(id, models.UploadStatusError, func(it *models.UploadQueueItem) {
		it.Error = err.Error()
	})
}
