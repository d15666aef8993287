package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tzathaw95-arch/Myanlex/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

// Model assignments. Flash supports vision and is cost effective for
// the high-volume extraction path; the pro model handles reasoning
// over many cases at once.
const (
	extractionModel = "gemini-2.5-flash"
	analysisModel   = "gemini-3-pro-preview"
)

// maxChunkChars caps chunk text, counted in runes, to a safe token
// budget before it is sent for extraction.
const maxChunkChars = 25000

// Extraction confidence is heuristic and self-reported, not
// statistically calibrated.
const (
	textConfidence   = 95
	visionConfidence = 90
)

var (
	ErrClientNotSet     = errors.New("gemini client not set")
	ErrExtractionFailed = errors.New("extraction failed")
)

// ExtractionService turns raw judgment text or page images into
// structured case records via Gemini structured generation.
type ExtractionService struct {
	client *genai.Client
	pacer  *Pacer
	retry  RetryPolicy
}

// ExtractionServiceOption is a functional option for ExtractionService
type ExtractionServiceOption func(*ExtractionService)

// ExtractionWithGeminiClient sets the Gemini client
func ExtractionWithGeminiClient(client *genai.Client) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.client = client
	}
}

// ExtractionWithPacer sets the shared rate-limit pacer
func ExtractionWithPacer(pacer *Pacer) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.pacer = pacer
	}
}

// ExtractionWithRetryPolicy overrides the default retry policy
func ExtractionWithRetryPolicy(policy RetryPolicy) ExtractionServiceOption {
	return func(s *ExtractionService) {
		s.retry = policy
	}
}

// NewExtractionService creates a new extraction service
func NewExtractionService(opts ...ExtractionServiceOption) *ExtractionService {
	s := &ExtractionService{
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// caseSchema is the fixed output schema shared by the text and vision
// paths.
func caseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cleanedContent": {
				Type:        genai.TypeString,
				Description: "The full case text converted to Standard Myanmar Unicode.",
			},
			"caseName":        {Type: genai.TypeString},
			"caseNameEnglish": {Type: genai.TypeString},
			"citation":        {Type: genai.TypeString},
			"court":           {Type: genai.TypeString},
			"judges": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"date": {
				Type:        genai.TypeString,
				Description: "YYYY-MM-DD format if possible",
			},
			"caseType": {
				Type:        genai.TypeString,
				Description: "Must be one of: Administrative, Land, Criminal, Civil, Family, Constitutional, Corporate, Maritime, Labor",
			},
			"status": {
				Type: genai.TypeString,
				Enum: []string{"GOOD_LAW", "OVERRULED", "DISTINGUISHED", "CAUTION"},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "Short summary for search results",
			},
			"brief": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"facts":      {Type: genai.TypeString},
					"issues":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"holding":    {Type: genai.TypeString},
					"reasoning":  {Type: genai.TypeString},
					"principles": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"facts", "issues", "holding", "reasoning", "principles"},
			},
			"parties": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"plaintiff": {Type: genai.TypeString},
					"defendant": {Type: genai.TypeString},
				},
			},
		},
		Required: []string{"cleanedContent", "caseName", "citation", "court", "summary", "brief", "caseType", "status"},
	}
}

// extractedCase mirrors the schema for JSON decoding. Missing optional
// fields decode to zero values, never nulls propagated into records.
type extractedCase struct {
	CleanedContent  string           `json:"cleanedContent"`
	CaseName        string           `json:"caseName"`
	CaseNameEnglish string           `json:"caseNameEnglish"`
	Citation        string           `json:"citation"`
	Court           string           `json:"court"`
	Judges          []string         `json:"judges"`
	Date            string           `json:"date"`
	CaseType        string           `json:"caseType"`
	Status          string           `json:"status"`
	Summary         string           `json:"summary"`
	Brief           models.CaseBrief `json:"brief"`
	Parties         models.Parties   `json:"parties"`
}

// toLegalCase applies required-field defaults and provenance.
func (e *extractedCase) toLegalCase(id, sourceName, fallbackContent string, confidence int) *models.LegalCase {
	content := e.CleanedContent
	if content == "" {
		content = fallbackContent
	}

	status := models.CitationStatus(e.Status)
	if !status.Valid() {
		status = models.StatusGoodLaw
	}

	brief := e.Brief
	if brief.Issues == nil {
		brief.Issues = []string{}
	}
	if brief.Principles == nil {
		brief.Principles = []string{}
	}

	judges := e.Judges
	if judges == nil {
		judges = []string{}
	}

	return &models.LegalCase{
		ID:                    id,
		CaseName:              e.CaseName,
		CaseNameEnglish:       e.CaseNameEnglish,
		Citation:              e.Citation,
		Court:                 e.Court,
		Judges:                judges,
		Content:               content,
		Date:                  e.Date,
		Headnotes:             models.StringList{},
		CaseType:              e.CaseType,
		Summary:               e.Summary,
		Holding:               brief.Holding,
		LegalIssues:           brief.Issues,
		Parties:               e.Parties,
		Brief:                 &brief,
		Status:                status,
		SourcePDFName:         sourceName,
		ExtractionDate:        time.Now().UTC(),
		ExtractionConfidence:  confidence,
		ExtractedSuccessfully: true,
	}
}

const extractionPromptTemplate = `You are a legal expert processing a Myanmar court case.

**TASK 1: DECODE & CLEAN**
- The input usually contains **Zawgyi-One** encoding (appears as English gibberish).
- Convert ALL text to **Standard Myanmar Unicode**.

**TASK 2: METADATA EXTRACTION**
- Extract Case Name, Citation, Court, Judges, Date, Parties.
- Classify Category (Civil, Criminal, etc.).

**TASK 3: BRIEF**
- Generate a comprehensive legal brief.

**Text to Analyze:**
"%s"`

// ExtractCase structures a single text chunk into a case record.
// ordinalIndex is the chunk's position within its source file.
func (s *ExtractionService) ExtractCase(ctx context.Context, caseText, sourceName string, ordinalIndex int) (*models.LegalCase, error) {
	if s.client == nil {
		return nil, ErrClientNotSet
	}

	// Truncation counts runes so Myanmar text is never cut mid-character
	// into invalid UTF-8.
	prompt := fmt.Sprintf(extractionPromptTemplate, truncateRunes(caseText, maxChunkChars))

	model := s.client.GenerativeModel(extractionModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = caseSchema()

	raw, err := s.generate(ctx, model, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to extract case %d from %s: %w", ordinalIndex, sourceName, err)
	}

	var data extractedCase
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		// Malformed JSON degrades to defaults; the raw chunk is still
		// saved as the record content.
		log.Printf("Warning: malformed extraction payload for %s chunk %d: %v", sourceName, ordinalIndex, err)
	}

	id := fmt.Sprintf("case-%s", uuid.NewString())
	return data.toLegalCase(id, sourceName, caseText, textConfidence), nil
}

const visionPrompt = `You are a Visual Legal OCR Engine.
The images provided are pages of a Myanmar Court Judgment.

1. **OCR & TRANSLITERATE**: Read the visual text. It may be in standard Myanmar font or old typewriter output.
2. **STRUCTURE**: Extract the legal case data.
3. **OUTPUT**: Return a JSON ARRAY of cases found (usually just 1, but maybe multiple).

Ensure "cleanedContent" contains the FULL text you read from the images, converted to clean Unicode.`

// ExtractCasesFromImages OCR-reads a batch of page images. A batch may
// contain more than one judgment, so the result is a slice.
func (s *ExtractionService) ExtractCasesFromImages(ctx context.Context, jpegPages [][]byte, sourceName string) ([]*models.LegalCase, error) {
	if s.client == nil {
		return nil, ErrClientNotSet
	}
	if len(jpegPages) == 0 {
		return nil, errors.New("no page images to extract")
	}

	model := s.client.GenerativeModel(extractionModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: caseSchema(),
	}

	parts := make([]genai.Part, 0, len(jpegPages)+1)
	for _, page := range jpegPages {
		parts = append(parts, genai.ImageData("jpeg", page))
	}
	parts = append(parts, genai.Text(visionPrompt))

	raw, err := s.generate(ctx, model, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract cases from images of %s: %w", sourceName, err)
	}

	var payload []extractedCase
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("Warning: malformed vision payload for %s: %v", sourceName, err)
		payload = nil
	}

	cases := make([]*models.LegalCase, 0, len(payload))
	for i := range payload {
		id := fmt.Sprintf("case-vis-%s", uuid.NewString())
		cases = append(cases, payload[i].toLegalCase(id, sourceName, "Text extracted from image.", visionConfidence))
	}
	return cases, nil
}

// generate runs one structured-generation call through the pacer and
// the retry wrapper, returning the concatenated text parts.
func (s *ExtractionService) generate(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (string, error) {
	var result string
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}

		resp, err := model.GenerateContent(ctx, parts...)
		if err != nil {
			return err
		}

		text, err := responseText(resp)
		if err != nil {
			return err
		}
		result = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// responseText flattens a generation response into its text payload.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: API returned no candidates", ErrExtractionFailed)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}

	result := builder.String()
	if result == "" {
		return "", fmt.Errorf("%w: API returned empty content", ErrExtractionFailed)
	}
	return result, nil
}
