package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tzathaw95-arch/Myanlex/store"

	"github.com/google/generative-ai-go/genai"
)

var ErrAnalysisFailed = errors.New("citation analysis failed")

// CitationService runs the cross-case citation network analysis: one
// large batched call over condensed summaries of every known case,
// producing a status label per case. Failure fails the whole batch;
// nothing is applied on partial results.
type CitationService struct {
	client *genai.Client
	cases  *store.CaseStore
	pacer  *Pacer
	retry  RetryPolicy
}

// CitationServiceOption is a functional option for CitationService
type CitationServiceOption func(*CitationService)

// CitationWithGeminiClient sets the Gemini client
func CitationWithGeminiClient(client *genai.Client) CitationServiceOption {
	return func(s *CitationService) {
		s.client = client
	}
}

// CitationWithCaseStore sets the case store
func CitationWithCaseStore(cases *store.CaseStore) CitationServiceOption {
	return func(s *CitationService) {
		s.cases = cases
	}
}

// CitationWithPacer sets the shared rate-limit pacer
func CitationWithPacer(pacer *Pacer) CitationServiceOption {
	return func(s *CitationService) {
		s.pacer = pacer
	}
}

// CitationWithRetryPolicy overrides the default retry policy
func CitationWithRetryPolicy(policy RetryPolicy) CitationServiceOption {
	return func(s *CitationService) {
		s.retry = policy
	}
}

// NewCitationService creates a new citation analysis service
func NewCitationService(opts ...CitationServiceOption) *CitationService {
	s := &CitationService{
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// condensedCase is the per-case digest sent to the model; full content
// would blow the context window for any real database.
type condensedCase struct {
	ID       string `json:"id"`
	Citation string `json:"citation"`
	CaseName string `json:"caseName"`
	Holding  string `json:"holding"`
	Year     string `json:"year"`
}

const maxCondensedHolding = 500

// AnalyzeNetwork labels every stored case with a citation status and
// applies the result through the store's bulk update. It returns the
// number of records whose status changed.
func (s *CitationService) AnalyzeNetwork(ctx context.Context) (int, error) {
	if s.client == nil {
		return 0, ErrClientNotSet
	}
	if s.cases == nil {
		return 0, errors.New("case store not set")
	}

	all := s.cases.GetAll()
	if len(all) == 0 {
		return 0, nil
	}

	condensed := make([]condensedCase, 0, len(all))
	for _, c := range all {
		year := c.Date
		if len(year) > 4 {
			year = year[:4]
		}
		condensed = append(condensed, condensedCase{
			ID:       c.ID,
			Citation: c.Citation,
			CaseName: c.CaseName,
			Holding:  truncateRunes(c.Holding, maxCondensedHolding),
			Year:     year,
		})
	}

	payload, err := json.Marshal(condensed)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal condensed cases: %w", err)
	}

	prompt := fmt.Sprintf(`You are a "Shepardizing" Engine (Citation Analysis) for a database of Myanmar Law.
Review the provided list of cases and determine the Citation Status of each.
Return a JSON array of {id, status}.
Input Data: %s`, payload)

	model := s.client.GenerativeModel(analysisModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id": {Type: genai.TypeString},
				"status": {
					Type: genai.TypeString,
					Enum: []string{"GOOD_LAW", "OVERRULED", "DISTINGUISHED", "CAUTION"},
				},
			},
			Required: []string{"id", "status"},
		},
	}

	var raw string
	err = s.retry.Do(ctx, func(ctx context.Context) error {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return err
		}
		raw, err = responseText(resp)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	var updates []store.StatusUpdate
	if err := json.Unmarshal([]byte(raw), &updates); err != nil {
		return 0, fmt.Errorf("%w: malformed response: %v", ErrAnalysisFailed, err)
	}

	return s.cases.BulkUpdateStatus(updates), nil
}

// truncateRunes cuts s to at most n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
