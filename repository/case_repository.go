package repository

import (
	"context"

	"github.com/tzathaw95-arch/Myanlex/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseRepository handles database operations for legal cases. It is
// the durable tier behind the in-memory case store.
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

const caseColumns = `
	id, case_name, case_name_english, citation, court, judges,
	content, decision_date, headnotes, case_type, summary, holding,
	legal_issues, parties, brief, status, source_pdf_name,
	extraction_date, extraction_confidence, extracted_successfully`

// GetAll retrieves every stored case, oldest write first.
func (r *CaseRepository) GetAll(ctx context.Context) ([]*models.LegalCase, error) {
	query := `SELECT ` + caseColumns + ` FROM cases ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.LegalCase
	for rows.Next() {
		c := &models.LegalCase{}
		var brief models.CaseBrief
		var hasBrief bool
		err := rows.Scan(
			&c.ID,
			&c.CaseName,
			&c.CaseNameEnglish,
			&c.Citation,
			&c.Court,
			&c.Judges,
			&c.Content,
			&c.Date,
			&c.Headnotes,
			&c.CaseType,
			&c.Summary,
			&c.Holding,
			&c.LegalIssues,
			&c.Parties,
			&briefScanner{brief: &brief, present: &hasBrief},
			&c.Status,
			&c.SourcePDFName,
			&c.ExtractionDate,
			&c.ExtractionConfidence,
			&c.ExtractedSuccessfully,
		)
		if err != nil {
			return nil, err
		}
		if hasBrief {
			c.Brief = &brief
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}

// Upsert inserts or replaces a case by id.
func (r *CaseRepository) Upsert(ctx context.Context, c *models.LegalCase) error {
	query := `
		INSERT INTO cases (` + caseColumns + `, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
		ON CONFLICT (id) DO UPDATE SET
			case_name = EXCLUDED.case_name,
			case_name_english = EXCLUDED.case_name_english,
			citation = EXCLUDED.citation,
			court = EXCLUDED.court,
			judges = EXCLUDED.judges,
			content = EXCLUDED.content,
			decision_date = EXCLUDED.decision_date,
			headnotes = EXCLUDED.headnotes,
			case_type = EXCLUDED.case_type,
			summary = EXCLUDED.summary,
			holding = EXCLUDED.holding,
			legal_issues = EXCLUDED.legal_issues,
			parties = EXCLUDED.parties,
			brief = EXCLUDED.brief,
			status = EXCLUDED.status,
			source_pdf_name = EXCLUDED.source_pdf_name,
			extraction_date = EXCLUDED.extraction_date,
			extraction_confidence = EXCLUDED.extraction_confidence,
			extracted_successfully = EXCLUDED.extracted_successfully`

	var brief interface{}
	if c.Brief != nil {
		brief = *c.Brief
	}

	_, err := r.db.Exec(
		ctx, query,
		c.ID,
		c.CaseName,
		c.CaseNameEnglish,
		c.Citation,
		c.Court,
		c.Judges,
		c.Content,
		c.Date,
		c.Headnotes,
		c.CaseType,
		c.Summary,
		c.Holding,
		c.LegalIssues,
		c.Parties,
		brief,
		c.Status,
		c.SourcePDFName,
		c.ExtractionDate,
		c.ExtractionConfidence,
		c.ExtractedSuccessfully,
	)
	return err
}

// Delete removes a case by id.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
	return err
}

// Clear removes all cases.
func (r *CaseRepository) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cases`)
	return err
}

// briefScanner scans a nullable JSONB brief column.
type briefScanner struct {
	brief   *models.CaseBrief
	present *bool
}

func (b *briefScanner) Scan(value interface{}) error {
	if value == nil {
		*b.present = false
		return nil
	}
	*b.present = true
	return b.brief.Scan(value)
}
