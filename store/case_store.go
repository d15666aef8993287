// Package store implements the dual-layer case record store: a
// process-lifetime in-memory list backing synchronous reads, mirrored
// to an asynchronous durable repository. Reads always reflect the
// latest write within this process; durability is best-effort.
package store

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tzathaw95-arch/Myanlex/models"
)

// CaseRepository is the durable tier. A nil repository degrades the
// store to memory-only operation.
type CaseRepository interface {
	GetAll(ctx context.Context) ([]*models.LegalCase, error)
	Upsert(ctx context.Context, c *models.LegalCase) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

const persistTimeout = 10 * time.Second

// CaseStore holds the in-memory case list and mirrors every write to
// the repository. All mutations go through the single writer lock.
type CaseStore struct {
	mu    sync.RWMutex
	cases []*models.LegalCase
	repo  CaseRepository

	// persistWG lets tests drain in-flight async writes.
	persistWG sync.WaitGroup
}

// NewCaseStore creates a store backed by repo. repo may be nil.
func NewCaseStore(repo CaseRepository) *CaseStore {
	return &CaseStore{repo: repo}
}

// Init loads the durable tier into memory. An empty durable store is
// seeded with the built-in case set; a failing one degrades the store
// to memory-only on the seed set. Init never returns an error: storage
// failure must not take the application down.
func (s *CaseStore) Init(ctx context.Context) {
	if s.repo == nil {
		log.Printf("Warning: no durable store configured, running memory-only")
		s.resetToSeed()
		return
	}

	cases, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Printf("Warning: durable store unavailable (%v), running memory-only with seed data", err)
		s.resetToSeed()
		return
	}

	if len(cases) == 0 {
		log.Printf("Durable store empty, seeding built-in case set")
		seeds := SeedCases()
		for _, c := range seeds {
			if err := s.repo.Upsert(ctx, c); err != nil {
				log.Printf("Warning: failed to persist seed case %s: %v", c.ID, err)
			}
		}
		cases = seeds
	}

	s.mu.Lock()
	s.cases = cases
	s.mu.Unlock()
	log.Printf("Case store initialized with %d cases", len(cases))
}

func (s *CaseStore) resetToSeed() {
	s.mu.Lock()
	s.cases = SeedCases()
	s.mu.Unlock()
}

// GetAll returns all cases in insertion order.
func (s *CaseStore) GetAll() []*models.LegalCase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.LegalCase, len(s.cases))
	copy(out, s.cases)
	return out
}

// GetByID returns the case with the given id, or nil.
func (s *CaseStore) GetByID(id string) *models.LegalCase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cases {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Count returns the number of stored cases.
func (s *CaseStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases)
}

// Save upserts by id: memory synchronously, then a fire-and-forget
// write to the durable tier. New records go to the front so the most
// recent ingestion surfaces first.
func (s *CaseStore) Save(c *models.LegalCase) {
	s.mu.Lock()
	replaced := false
	for i := range s.cases {
		if s.cases[i].ID == c.ID {
			s.cases[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		s.cases = append([]*models.LegalCase{c}, s.cases...)
	}
	s.mu.Unlock()

	s.persistAsync(c)
}

// Delete removes a case from memory and, asynchronously, from the
// durable tier. Unknown ids are a no-op.
func (s *CaseStore) Delete(id string) {
	s.mu.Lock()
	for i := range s.cases {
		if s.cases[i].ID == id {
			s.cases = append(s.cases[:i], s.cases[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.repo.Delete(ctx, id); err != nil {
			log.Printf("Warning: failed to delete case %s from durable store: %v", id, err)
		}
	}()
}

// StatusUpdate pairs a case id with its new citation status.
type StatusUpdate struct {
	ID     string                `json:"id"`
	Status models.CitationStatus `json:"status"`
}

// BulkUpdateStatus applies citation statuses to matching records and
// persists each changed record. Unknown ids are silently ignored: the
// analyzer may reference stale ids from a snapshot taken moments
// earlier. Invalid statuses are skipped to keep the enum invariant.
func (s *CaseStore) BulkUpdateStatus(updates []StatusUpdate) int {
	byID := make(map[string]models.CitationStatus, len(updates))
	for _, u := range updates {
		if u.Status.Valid() {
			byID[u.ID] = u.Status
		}
	}

	// Records handed out by GetAll/GetByID are read without the lock,
	// so the status lands on a copy and the pointer is swapped in place
	// of writing through the shared record.
	var changed []*models.LegalCase
	s.mu.Lock()
	for i, c := range s.cases {
		if status, ok := byID[c.ID]; ok && c.Status != status {
			clone := *c
			clone.Status = status
			s.cases[i] = &clone
			changed = append(changed, &clone)
		}
	}
	s.mu.Unlock()

	for _, c := range changed {
		s.persistAsync(c)
	}
	return len(changed)
}

// Clear resets the store to the built-in seed set, in memory and in
// the durable tier. Reset is re-seed, never empty.
func (s *CaseStore) Clear() {
	s.resetToSeed()

	if s.repo == nil {
		return
	}
	seeds := SeedCases()
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.repo.Clear(ctx); err != nil {
			log.Printf("Warning: failed to clear durable store: %v", err)
			return
		}
		for _, c := range seeds {
			if err := s.repo.Upsert(ctx, c); err != nil {
				log.Printf("Warning: failed to re-seed case %s: %v", c.ID, err)
			}
		}
	}()
}

// Categories derives the case-type suggestion list: the distinct set
// over current records merged with the fixed seed list, sorted. There
// is no categories table; case types are open strings.
func (s *CaseStore) Categories() []string {
	seen := make(map[string]bool)
	for _, cat := range seedCategories {
		seen[cat] = true
	}
	s.mu.RLock()
	for _, c := range s.cases {
		if c.CaseType != "" {
			seen[c.CaseType] = true
		}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

func (s *CaseStore) persistAsync(c *models.LegalCase) {
	if s.repo == nil {
		return
	}
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.repo.Upsert(ctx, c); err != nil {
			// In-memory state stays the working truth; documents can
			// be re-ingested if durability was lost.
			log.Printf("Warning: failed to persist case %s: %v", c.ID, err)
		}
	}()
}

// Search runs the three-mode query described in the search design:
// empty query returns everything, AND/OR/NOT queries are evaluated as
// boolean filters, anything else is ranked free text.
func (s *CaseStore) Search(query string) []*models.LegalCase {
	cases := s.GetAll()
	if strings.TrimSpace(query) == "" {
		return cases
	}

	lowerQuery := strings.ToLower(query)
	terms := strings.Fields(lowerQuery)

	if hasBooleanOperator(terms) {
		return filterBoolean(cases, query)
	}
	return rankCases(cases, lowerQuery, terms)
}

func hasBooleanOperator(terms []string) bool {
	for _, t := range terms {
		if t == "and" || t == "or" || t == "not" {
			return true
		}
	}
	return false
}

// filterBoolean evaluates the query as OR-of-AND-groups with NOT
// negation against the concatenated searchable fields.
func filterBoolean(cases []*models.LegalCase, query string) []*models.LegalCase {
	var out []*models.LegalCase
	orGroups := strings.Split(query, " OR ")

	for _, c := range cases {
		text := strings.ToLower(c.SearchText())
		for _, group := range orGroups {
			if matchesAndGroup(text, group) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func matchesAndGroup(text, group string) bool {
	for _, term := range strings.Split(group, " AND ") {
		if idx := strings.Index(term, "NOT "); idx >= 0 {
			positive := strings.ToLower(strings.TrimSpace(term[:idx]))
			negative := strings.ToLower(strings.TrimSpace(term[idx+len("NOT "):]))
			if positive != "" && !strings.Contains(text, positive) {
				return false
			}
			if negative != "" && strings.Contains(text, negative) {
				return false
			}
			continue
		}
		cleaned := strings.ToLower(strings.TrimSpace(term))
		if cleaned != "" && !strings.Contains(text, cleaned) {
			return false
		}
	}
	return true
}

type scoredCase struct {
	c     *models.LegalCase
	score int
}

// Field weights: title/citation/court are worth far more than a match
// buried in the full text.
const (
	phraseBonus   = 100
	titleWeight   = 20
	summaryWeight = 10
	contentWeight = 1
)

// rankCases scores each case against every term. A case qualifies only
// if every term matches in at least one field; ties keep encounter
// order (stable sort).
func rankCases(cases []*models.LegalCase, lowerQuery string, terms []string) []*models.LegalCase {
	scored := make([]scoredCase, 0, len(cases))

	for _, c := range cases {
		title := strings.ToLower(c.CaseName)
		citation := strings.ToLower(c.Citation)
		court := strings.ToLower(c.Court)
		summary := strings.ToLower(c.Summary)
		content := strings.ToLower(c.Content)

		score := 0
		if strings.Contains(title, lowerQuery) {
			score += phraseBonus
		}
		if strings.Contains(citation, lowerQuery) {
			score += phraseBonus
		}

		matchesAll := true
		for _, term := range terms {
			found := false
			if strings.Contains(title, term) || strings.Contains(citation, term) || strings.Contains(court, term) {
				score += titleWeight
				found = true
			}
			if strings.Contains(summary, term) || headnotesContain(c.Headnotes, term) {
				score += summaryWeight
				found = true
			}
			if strings.Contains(content, term) {
				score += contentWeight
				found = true
			}
			if !found {
				matchesAll = false
				break
			}
		}

		if matchesAll {
			scored = append(scored, scoredCase{c: c, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]*models.LegalCase, len(scored))
	for i, sc := range scored {
		out[i] = sc.c
	}
	return out
}

func headnotesContain(notes models.StringList, term string) bool {
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n), term) {
			return true
		}
	}
	return false
}

// WaitForPersistence blocks until all in-flight durable writes settle.
// Intended for tests and graceful shutdown.
func (s *CaseStore) WaitForPersistence() {
	s.persistWG.Wait()
}
