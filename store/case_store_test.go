package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tzathaw95-arch/Myanlex/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo records repository calls for assertions.
type fakeRepo struct {
	mu      sync.Mutex
	cases   map[string]*models.LegalCase
	failAll bool
	upserts int
	clears  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{cases: make(map[string]*models.LegalCase)}
}

func (r *fakeRepo) GetAll(ctx context.Context) ([]*models.LegalCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, errors.New("connection refused")
	}
	out := make([]*models.LegalCase, 0, len(r.cases))
	for _, c := range r.cases {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, c *models.LegalCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errors.New("connection refused")
	}
	r.cases[c.ID] = c
	r.upserts++
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cases, id)
	return nil
}

func (r *fakeRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases = make(map[string]*models.LegalCase)
	r.clears++
	return nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cases)
}

func memoryStore(t *testing.T) *CaseStore {
	t.Helper()
	s := NewCaseStore(nil)
	s.Init(context.Background())
	return s
}

func testCase(id, name, summary, content string) *models.LegalCase {
	return &models.LegalCase{
		ID:       id,
		CaseName: name,
		Summary:  summary,
		Content:  content,
		Status:   models.StatusGoodLaw,
	}
}

func TestInitNilRepoSeeds(t *testing.T) {
	s := memoryStore(t)
	assert.Equal(t, len(SeedCases()), s.Count())
}

func TestInitFailingRepoDegradesToSeed(t *testing.T) {
	repo := newFakeRepo()
	repo.failAll = true

	s := NewCaseStore(repo)
	s.Init(context.Background())

	assert.Equal(t, len(SeedCases()), s.Count())
}

func TestInitEmptyRepoSeedsDurableTier(t *testing.T) {
	repo := newFakeRepo()
	s := NewCaseStore(repo)
	s.Init(context.Background())

	assert.Equal(t, len(SeedCases()), s.Count())
	assert.Equal(t, len(SeedCases()), repo.count())
}

func TestSaveUpsertsByID(t *testing.T) {
	s := memoryStore(t)
	before := s.Count()

	s.Save(testCase("c-1", "First", "", ""))
	s.Save(testCase("c-1", "First revised", "", ""))

	assert.Equal(t, before+1, s.Count())
	got := s.GetByID("c-1")
	require.NotNil(t, got)
	assert.Equal(t, "First revised", got.CaseName)
}

func TestSaveNewRecordSurfacesFirst(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-new", "Newest", "", ""))

	all := s.GetAll()
	require.NotEmpty(t, all)
	assert.Equal(t, "c-new", all[0].ID)
}

func TestSavePersistsAsync(t *testing.T) {
	repo := newFakeRepo()
	s := NewCaseStore(repo)
	s.Init(context.Background())

	s.Save(testCase("c-1", "First", "", ""))
	s.WaitForPersistence()

	repo.mu.Lock()
	_, ok := repo.cases["c-1"]
	repo.mu.Unlock()
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "First", "", ""))
	before := s.Count()

	s.Delete("c-1")
	assert.Equal(t, before-1, s.Count())
	assert.Nil(t, s.GetByID("c-1"))

	// Unknown id is a no-op.
	s.Delete("c-missing")
	assert.Equal(t, before-1, s.Count())
}

func TestSearchEmptyReturnsAll(t *testing.T) {
	s := memoryStore(t)
	assert.Len(t, s.Search(""), s.Count())
	assert.Len(t, s.Search("   "), s.Count())
}

func TestSearchRankedRequiresAllTerms(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "Contract dispute over lease", "", "tenant obligations"))
	s.Save(testCase("c-2", "Contract formation", "", "offer and acceptance"))

	results := s.Search("contract lease")

	require.Len(t, results, 1)
	assert.Equal(t, "c-1", results[0].ID)
}

func TestSearchRankedPrefersTitleMatches(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-title", "Easement rights appeal", "", ""))
	s.Save(testCase("c-body", "Unrelated heading", "", "a passing mention of easement law"))

	results := s.Search("easement")

	require.Len(t, results, 2)
	assert.Equal(t, "c-title", results[0].ID)
}

func TestSearchBooleanAnd(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "Contract dispute", "", "lease terms"))
	s.Save(testCase("c-2", "Contract formation", "", "offer only"))

	results := s.Search("contract AND lease")

	require.Len(t, results, 1)
	assert.Equal(t, "c-1", results[0].ID)
}

func TestSearchBooleanOr(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "Negotiable instruments", "", ""))
	s.Save(testCase("c-2", "Promissory estoppel", "", ""))

	results := s.Search("negotiable OR estoppel")
	assert.Len(t, results, 2)
}

func TestSearchBooleanNot(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "Contract dispute", "", "lease terms"))
	s.Save(testCase("c-2", "Contract formation", "", "offer only"))

	results := s.Search("contract NOT lease")

	require.Len(t, results, 1)
	assert.Equal(t, "c-2", results[0].ID)
}

func TestBulkUpdateStatus(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "First", "", ""))
	s.Save(testCase("c-2", "Second", "", ""))

	changed := s.BulkUpdateStatus([]StatusUpdate{
		{ID: "c-1", Status: models.StatusOverruled},
		{ID: "c-2", Status: models.StatusGoodLaw},         // unchanged
		{ID: "c-missing", Status: models.StatusCaution},   // unknown id
		{ID: "c-2", Status: models.CitationStatus("???")}, // invalid
	})

	assert.Equal(t, 1, changed)
	assert.Equal(t, models.StatusOverruled, s.GetByID("c-1").Status)
	assert.Equal(t, models.StatusGoodLaw, s.GetByID("c-2").Status)
}

func TestBulkUpdateStatusDoesNotMutateSnapshots(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "First", "", ""))

	snapshot := s.GetByID("c-1")
	changed := s.BulkUpdateStatus([]StatusUpdate{{ID: "c-1", Status: models.StatusOverruled}})

	// Records already handed out keep their old status; the update is
	// visible only through a fresh read.
	assert.Equal(t, 1, changed)
	assert.Equal(t, models.StatusGoodLaw, snapshot.Status)
	assert.Equal(t, models.StatusOverruled, s.GetByID("c-1").Status)
}

func TestBulkUpdateStatusConcurrentReads(t *testing.T) {
	s := memoryStore(t)
	s.Save(testCase("c-1", "First", "", ""))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.True(t, s.GetByID("c-1").Status.Valid())
		}
	}()
	go func() {
		defer wg.Done()
		statuses := []models.CitationStatus{models.StatusOverruled, models.StatusGoodLaw}
		for i := 0; i < 200; i++ {
			s.BulkUpdateStatus([]StatusUpdate{{ID: "c-1", Status: statuses[i%2]}})
		}
	}()
	wg.Wait()
}

func TestBulkUpdateStatusAllUnknownIsNoOp(t *testing.T) {
	s := memoryStore(t)
	before := s.GetAll()

	changed := s.BulkUpdateStatus([]StatusUpdate{
		{ID: "nonexistent", Status: models.StatusOverruled},
	})

	assert.Zero(t, changed)
	assert.Equal(t, before, s.GetAll())
}

func TestClearRestoresSeedSet(t *testing.T) {
	repo := newFakeRepo()
	s := NewCaseStore(repo)
	s.Init(context.Background())
	s.Save(testCase("c-1", "First", "", ""))
	s.WaitForPersistence()

	s.Clear()
	s.WaitForPersistence()

	seedIDs := make(map[string]bool)
	for _, c := range SeedCases() {
		seedIDs[c.ID] = true
	}

	all := s.GetAll()
	require.Len(t, all, len(seedIDs))
	for _, c := range all {
		assert.True(t, seedIDs[c.ID], "unexpected case %s after reset", c.ID)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.clears)
	assert.Len(t, repo.cases, len(seedIDs))
}

func TestCategoriesMergesSeedAndLive(t *testing.T) {
	s := memoryStore(t)
	s.Save(&models.LegalCase{ID: "c-1", CaseName: "First", CaseType: "Taxation", Status: models.StatusGoodLaw})

	cats := s.Categories()

	assert.Contains(t, cats, "Criminal")
	assert.Contains(t, cats, "Taxation")
	assert.IsIncreasing(t, cats)
}
