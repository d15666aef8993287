package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tzathaw95-arch/Myanlex/models"
	"github.com/tzathaw95-arch/Myanlex/store"

	"github.com/google/generative-ai-go/genai"
)

// AnalysisMode selects the comparative-analysis instruction.
type AnalysisMode string

const (
	ModePoints         AnalysisMode = "POINTS"
	ModeContradictions AnalysisMode = "CONTRADICTIONS"
	ModeSimilarity     AnalysisMode = "SIMILARITY"
	ModeCustom         AnalysisMode = "CUSTOM"
)

var (
	ErrNoCasesSelected = errors.New("no cases selected for analysis")
	ErrCaseNotFound    = errors.New("case not found")
)

// Context truncation budgets for chat and comparative analysis.
const (
	maxChatCaseContext = 15000
	maxCompareContent  = 8000
)

// AssistantService answers legal research questions and runs
// multi-case comparative analysis over the record store's read API.
type AssistantService struct {
	client *genai.Client
	cases  *store.CaseStore
	pacer  *Pacer
	retry  RetryPolicy
}

// AssistantServiceOption is a functional option for AssistantService
type AssistantServiceOption func(*AssistantService)

// AssistantWithGeminiClient sets the Gemini client
func AssistantWithGeminiClient(client *genai.Client) AssistantServiceOption {
	return func(s *AssistantService) {
		s.client = client
	}
}

// AssistantWithCaseStore sets the case store
func AssistantWithCaseStore(cases *store.CaseStore) AssistantServiceOption {
	return func(s *AssistantService) {
		s.cases = cases
	}
}

// AssistantWithPacer sets the shared rate-limit pacer
func AssistantWithPacer(pacer *Pacer) AssistantServiceOption {
	return func(s *AssistantService) {
		s.pacer = pacer
	}
}

// NewAssistantService creates a new assistant service
func NewAssistantService(opts ...AssistantServiceOption) *AssistantService {
	s := &AssistantService{
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const assistantSystemInstruction = `You are an expert Legal Research Assistant for Myanmar Law (Myanlex).
ALL RESPONSES MUST BE IN BURMESE (Myanmar Language) - UNICODE ONLY.`

// Ask answers a research question, optionally grounded in one case's
// full text.
func (s *AssistantService) Ask(ctx context.Context, query, caseID string) (string, error) {
	if s.client == nil {
		return "", ErrClientNotSet
	}

	msg := query
	if caseID != "" {
		c := s.cases.GetByID(caseID)
		if c == nil {
			return "", ErrCaseNotFound
		}
		msg = fmt.Sprintf("Context Case: %s\n\nQuestion: %s", truncateRunes(c.Content, maxChatCaseContext), query)
	}

	model := s.client.GenerativeModel(analysisModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(assistantSystemInstruction)},
	}

	var answer string
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}
		chat := model.StartChat()
		resp, err := chat.SendMessage(ctx, genai.Text(msg))
		if err != nil {
			return err
		}
		answer, err = responseText(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}

// Compare runs comparative analysis across the selected cases.
func (s *AssistantService) Compare(ctx context.Context, caseIDs []string, mode AnalysisMode, customPrompt string) (string, error) {
	if s.client == nil {
		return "", ErrClientNotSet
	}
	if len(caseIDs) == 0 {
		return "", ErrNoCasesSelected
	}

	var selected []*models.LegalCase
	for _, id := range caseIDs {
		c := s.cases.GetByID(id)
		if c == nil {
			return "", fmt.Errorf("%w: %s", ErrCaseNotFound, id)
		}
		selected = append(selected, c)
	}

	var input strings.Builder
	for i, c := range selected {
		reasoning := ""
		if c.Brief != nil {
			reasoning = c.Brief.Reasoning
		}
		if reasoning == "" {
			reasoning = truncateRunes(c.Content, maxCompareContent)
		}
		fmt.Fprintf(&input, `
--- CASE %d ---
Name: %s (%s)
Year: %s
Court: %s
Summary: %s
Holding: %s
Reasoning: %s
`, i+1, c.CaseName, c.Citation, c.Date, c.Court, c.Summary, c.Holding, reasoning)
	}

	var instruction string
	switch mode {
	case ModePoints:
		instruction = "Synthesize the KEY LEGAL POINTS."
	case ModeContradictions:
		instruction = "Identify CONTRADICTIONS or OVERRULINGS."
	case ModeSimilarity:
		instruction = "Identify COMMON PRINCIPLES."
	case ModeCustom:
		instruction = customPrompt
		if instruction == "" {
			instruction = "Analyze these cases."
		}
	default:
		return "", fmt.Errorf("unknown analysis mode: %s", mode)
	}

	model := s.client.GenerativeModel(analysisModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf("You are a Senior Legal Analyst. Output in BURMESE (Unicode).\nTask: %s", instruction))},
	}

	var result string
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}
		resp, err := model.GenerateContent(ctx, genai.Text("Analyze:\n"+input.String()))
		if err != nil {
			return err
		}
		result, err = responseText(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return result, nil
}
