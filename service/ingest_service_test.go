package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tzathaw95-arch/Myanlex/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns a minimal structured case per chunk and can be
// told to fail specific ordinals.
type fakeExtractor struct {
	mu     sync.Mutex
	calls  int
	failOn map[int]bool
}

func (f *fakeExtractor) ExtractCase(ctx context.Context, caseText, sourceName string, ordinalIndex int) (*models.LegalCase, error) {
	f.mu.Lock()
	f.calls++
	fail := f.failOn[ordinalIndex]
	f.mu.Unlock()

	if fail {
		return nil, errors.New("extraction returned no text")
	}
	return &models.LegalCase{
		ID:                    fmt.Sprintf("case-%d", ordinalIndex),
		CaseName:              fmt.Sprintf("Case %d from %s", ordinalIndex, sourceName),
		Content:               caseText,
		Status:                models.StatusGoodLaw,
		SourcePDFName:         sourceName,
		ExtractedSuccessfully: true,
	}, nil
}

func (f *fakeExtractor) ExtractCasesFromImages(ctx context.Context, jpegPages [][]byte, sourceName string) ([]*models.LegalCase, error) {
	return nil, errors.New("vision path not exercised")
}

// fakeRecords collects saved cases.
type fakeRecords struct {
	mu    sync.Mutex
	saved []*models.LegalCase
}

func (f *fakeRecords) Save(c *models.LegalCase) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, c)
}

func (f *fakeRecords) all() []*models.LegalCase {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.LegalCase, len(f.saved))
	copy(out, f.saved)
	return out
}

// fakeArchive is an in-memory storage.Storage.
type fakeArchive struct {
	mu        sync.Mutex
	files     map[string][]byte
	downloads int
	deletes   int
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{files: make(map[string][]byte)}
}

func (f *fakeArchive) Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	path := fileID.String() + "/" + filename
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = b
	return path, nil
}

func (f *fakeArchive) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.files[storagePath]
	if !ok {
		return nil, errors.New("file not found")
	}
	f.downloads++
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeArchive) Delete(ctx context.Context, storagePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.files, storagePath)
	return nil
}

func (f *fakeArchive) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

func startedService(t *testing.T, extractor CaseExtractor, records RecordStore) *IngestService {
	t.Helper()
	s := NewIngestService(
		IngestWithExtractor(extractor),
		IngestWithRecordStore(records),
	)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s.Start(ctx)
	return s
}

func waitForTerminal(t *testing.T, s *IngestService, id string) models.UploadQueueItem {
	t.Helper()
	var item models.UploadQueueItem
	require.Eventually(t, func() bool {
		it, ok := s.Item(id)
		if !ok {
			return false
		}
		item = it
		return it.Status == models.UploadStatusCompleted || it.Status == models.UploadStatusError
	}, 5*time.Second, 10*time.Millisecond)
	return item
}

func reportVolume() string {
	body := strings.TrimSpace(strings.Repeat("the appellant contended that the lower court erred ", 10))
	return "Case No. 1 of 2021\n" + body + "\n\nCase No. 2 of 2021\n" + body
}

func TestIngestTextFileProducesOneRecordPerJudgment(t *testing.T) {
	extractor := &fakeExtractor{}
	records := &fakeRecords{}
	s := startedService(t, extractor, records)

	id, err := s.Enqueue(context.Background(), "volume.txt", []byte(reportVolume()))
	require.NoError(t, err)

	item := waitForTerminal(t, s, id)
	assert.Equal(t, models.UploadStatusCompleted, item.Status)
	assert.Equal(t, 2, item.TotalCasesDetected)
	assert.Equal(t, 2, item.ProcessedCases)
	assert.Empty(t, item.Error)

	saved := records.all()
	require.Len(t, saved, 2)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)
	for _, c := range saved {
		assert.True(t, c.ExtractedSuccessfully)
		assert.True(t, c.Status.Valid())
		assert.Equal(t, "volume.txt", c.SourcePDFName)
	}
}

func TestIngestContinuesPastFailedChunk(t *testing.T) {
	extractor := &fakeExtractor{failOn: map[int]bool{0: true}}
	records := &fakeRecords{}
	s := startedService(t, extractor, records)

	id, err := s.Enqueue(context.Background(), "volume.txt", []byte(reportVolume()))
	require.NoError(t, err)

	// One chunk failing is local damage: the file still completes and
	// the surviving judgment is persisted.
	item := waitForTerminal(t, s, id)
	assert.Equal(t, models.UploadStatusCompleted, item.Status)
	assert.Equal(t, 2, item.TotalCasesDetected)

	saved := records.all()
	require.Len(t, saved, 1)
	assert.Equal(t, "case-1", saved[0].ID)
}

func TestIngestUnreadablePDFMarksError(t *testing.T) {
	extractor := &fakeExtractor{}
	records := &fakeRecords{}
	s := startedService(t, extractor, records)

	id, err := s.Enqueue(context.Background(), "broken.pdf", []byte("%PDF-1.4 not actually a pdf"))
	require.NoError(t, err)

	item := waitForTerminal(t, s, id)
	assert.Equal(t, models.UploadStatusError, item.Status)
	assert.NotEmpty(t, item.Error)
	assert.Empty(t, records.all())
}

func TestIngestQueueSnapshotNewestFirst(t *testing.T) {
	extractor := &fakeExtractor{}
	records := &fakeRecords{}

	// Not started: items stay PENDING so ordering is observable.
	s := NewIngestService(
		IngestWithExtractor(extractor),
		IngestWithRecordStore(records),
	)

	first, err := s.Enqueue(context.Background(), "first.txt", []byte("one"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Enqueue(context.Background(), "second.txt", []byte("two"))
	require.NoError(t, err)

	queue := s.Queue()
	require.Len(t, queue, 2)
	assert.Equal(t, second, queue[0].ID)
	assert.Equal(t, first, queue[1].ID)
	assert.Equal(t, models.UploadStatusPending, queue[0].Status)
}

func startedServiceWithArchive(t *testing.T, extractor CaseExtractor, records RecordStore, archive *fakeArchive) *IngestService {
	t.Helper()
	s := NewIngestService(
		IngestWithExtractor(extractor),
		IngestWithRecordStore(records),
		IngestWithArchive(archive),
	)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s.Start(ctx)
	return s
}

func TestIngestRetryReplaysArchivedUpload(t *testing.T) {
	extractor := &fakeExtractor{}
	records := &fakeRecords{}
	archive := newFakeArchive()
	s := startedServiceWithArchive(t, extractor, records, archive)

	id, err := s.Enqueue(context.Background(), "volume.txt", []byte(reportVolume()))
	require.NoError(t, err)
	waitForTerminal(t, s, id)

	retryID, err := s.Retry(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, id, retryID)

	item := waitForTerminal(t, s, retryID)
	assert.Equal(t, models.UploadStatusCompleted, item.Status)
	assert.Equal(t, 2, item.TotalCasesDetected)

	// Both runs saved their judgments; the replay read the archive.
	assert.Len(t, records.all(), 4)
	archive.mu.Lock()
	downloads := archive.downloads
	archive.mu.Unlock()
	assert.Equal(t, 1, downloads)
}

func TestIngestRetryRejectsActiveItem(t *testing.T) {
	// Not started: the item stays PENDING.
	s := NewIngestService(
		IngestWithExtractor(&fakeExtractor{}),
		IngestWithRecordStore(&fakeRecords{}),
		IngestWithArchive(newFakeArchive()),
	)

	id, err := s.Enqueue(context.Background(), "volume.txt", []byte("text"))
	require.NoError(t, err)

	_, err = s.Retry(context.Background(), id)
	assert.ErrorIs(t, err, ErrQueueItemActive)
}

func TestIngestRetryUnknownItem(t *testing.T) {
	s := NewIngestService(
		IngestWithExtractor(&fakeExtractor{}),
		IngestWithRecordStore(&fakeRecords{}),
		IngestWithArchive(newFakeArchive()),
	)
	_, err := s.Retry(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQueueItemNotFound)
}

func TestIngestRemoveDeletesArchivedCopy(t *testing.T) {
	archive := newFakeArchive()
	s := startedServiceWithArchive(t, &fakeExtractor{}, &fakeRecords{}, archive)

	id, err := s.Enqueue(context.Background(), "volume.txt", []byte(reportVolume()))
	require.NoError(t, err)
	waitForTerminal(t, s, id)

	require.NoError(t, s.Remove(context.Background(), id))

	_, ok := s.Item(id)
	assert.False(t, ok)
	assert.Zero(t, archive.count())
	assert.ErrorIs(t, s.Remove(context.Background(), id), ErrQueueItemNotFound)
}

func TestIngestUnknownQueueItem(t *testing.T) {
	s := NewIngestService(
		IngestWithExtractor(&fakeExtractor{}),
		IngestWithRecordStore(&fakeRecords{}),
	)
	_, ok := s.Item("missing")
	assert.False(t, ok)
}

func TestIngestEnqueueRequiresWiring(t *testing.T) {
	s := NewIngestService()
	_, err := s.Enqueue(context.Background(), "volume.txt", []byte("text"))
	assert.Error(t, err)
}
