package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CitationStatus indicates a case's continuing legal authority.
type CitationStatus string

const (
	StatusGoodLaw       CitationStatus = "GOOD_LAW"
	StatusDistinguished CitationStatus = "DISTINGUISHED"
	StatusOverruled     CitationStatus = "OVERRULED"
	StatusCaution       CitationStatus = "CAUTION"
)

// Valid reports whether s is one of the four recognized statuses.
func (s CitationStatus) Valid() bool {
	switch s {
	case StatusGoodLaw, StatusDistinguished, StatusOverruled, StatusCaution:
		return true
	}
	return false
}

// CaseBrief is the structured brief produced once at extraction time
// and persisted with the record.
type CaseBrief struct {
	Facts      string   `json:"facts"`
	Issues     []string `json:"issues"`
	Holding    string   `json:"holding"`
	Reasoning  string   `json:"reasoning"`
	Principles []string `json:"principles"`
}

// Value implements driver.Valuer for JSONB
func (b CaseBrief) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB
func (b *CaseBrief) Scan(value interface{}) error {
	bytes, ok := jsonBytes(value)
	if !ok || len(bytes) == 0 {
		*b = CaseBrief{}
		return nil
	}
	return json.Unmarshal(bytes, b)
}

// Parties maps the litigants of a case. Both sides are optional since
// older reports frequently omit one.
type Parties struct {
	Plaintiff string `json:"plaintiff,omitempty"`
	Defendant string `json:"defendant,omitempty"`
}

// Value implements driver.Valuer for JSONB
func (p Parties) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *Parties) Scan(value interface{}) error {
	bytes, ok := jsonBytes(value)
	if !ok || len(bytes) == 0 {
		*p = Parties{}
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// StringList is a JSONB-backed string slice (judges, issues, headnotes).
type StringList []string

// Value implements driver.Valuer for JSONB
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *StringList) Scan(value interface{}) error {
	bytes, ok := jsonBytes(value)
	if !ok || len(bytes) == 0 {
		*l = make(StringList, 0)
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// jsonBytes normalizes the types pgx may hand back for JSONB columns.
func jsonBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}

// ManualEntrySource marks cases entered by hand in the admin panel
// rather than produced by the ingestion pipeline.
const ManualEntrySource = "Manual Entry"

// LegalCase is the canonical judgment record.
type LegalCase struct {
	ID              string         `json:"id"`
	CaseName        string         `json:"caseName"` // Myanmar text
	CaseNameEnglish string         `json:"caseNameEnglish,omitempty"`
	Citation        string         `json:"citation"`
	Court           string         `json:"court"`
	Judges          StringList     `json:"judges"`
	Content         string         `json:"content"` // Authoritative full text
	Date            string         `json:"date"`    // YYYY-MM-DD
	Headnotes       StringList     `json:"headnotes"`
	CaseType        string         `json:"caseType"` // Open category, not an enum
	Summary         string         `json:"summary"`
	Holding         string         `json:"holding"`
	LegalIssues     StringList     `json:"legalIssues"`
	Parties         Parties        `json:"parties"`
	Brief           *CaseBrief     `json:"brief,omitempty"`
	Status          CitationStatus `json:"status"`

	// Provenance
	SourcePDFName         string    `json:"sourcePdfName"`
	ExtractionDate        time.Time `json:"extractionDate"`
	ExtractionConfidence  int       `json:"extractionConfidence"` // 0-100, heuristic
	ExtractedSuccessfully bool      `json:"extractedSuccessfully"`
}

// SearchText concatenates the fields boolean queries match against.
func (c *LegalCase) SearchText() string {
	return c.CaseName + " " + c.Citation + " " + c.Summary + " " + c.Content
}
