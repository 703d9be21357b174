package postgres

import (
	"context"
	"time"

	"candidatehub-backend/internal/domain"
)

// CandidateEntity maps domain.Candidate to the candidates table.
var CandidateEntity = &EntityType[domain.Candidate]{
	Name:  "candidate",
	Table: "candidates",
	Key:   "id",
	Columns: []string{
		"id", "first_name", "last_name", "email", "phone_number",
		"call_time_preference", "linkedin_url", "github_url", "comments",
		"created_at", "updated_at",
	},
	OrderBy: "created_at, id",
	Fields: map[string]string{
		domain.CandidateFieldID:        "id",
		domain.CandidateFieldEmail:     "email",
		domain.CandidateFieldFirstName: "first_name",
		domain.CandidateFieldLastName:  "last_name",
		domain.CandidateFieldCreatedAt: "created_at",
	},
	KeyOf:         func(c *domain.Candidate) any { return c.ID },
	Scan:          scanCandidate,
	Values:        candidateValues,
	NewRepository: newCandidateRepository,
}

type candidateRepository struct {
	*genericRepository[domain.Candidate]
}

var _ domain.CandidateRepository = (*candidateRepository)(nil)

func newCandidateRepository(u *UnitOfWork, et *EntityType[domain.Candidate]) domain.Repository[domain.Candidate] {
	return &candidateRepository{genericRepository: newGenericRepo(u, et)}
}

// GetByEmail relies on ux_candidates_email_lower for the lookup.
func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	return r.FindOne(ctx, domain.EqFold(domain.CandidateFieldEmail, domain.NormalizeEmail(email)))
}

func scanCandidate(s Scanner) (*domain.Candidate, error) {
	var (
		c         domain.Candidate
		pref      *int16
		updatedAt *time.Time
	)
	err := s.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber,
		&pref, &c.LinkedInURL, &c.GitHubURL, &c.Comments,
		&c.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pref != nil {
		p := domain.CallTimePreference(*pref)
		c.CallTimePreference = &p
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if updatedAt != nil {
		u := updatedAt.UTC()
		c.UpdatedAt = &u
	}
	return &c, nil
}

func candidateValues(c *domain.Candidate) []any {
	var pref *int16
	if c.CallTimePreference != nil {
		p := int16(*c.CallTimePreference)
		pref = &p
	}
	return []any{
		c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber,
		pref, c.LinkedInURL, c.GitHubURL, c.Comments,
		c.CreatedAt, c.UpdatedAt,
	}
}
