package postgres

import (
	"time"

	"candidatehub-backend/internal/domain"

	"github.com/google/uuid"
)

// Schema creates the candidates table. The unique index on lower(email) is
// what rejects a concurrent duplicate insert, whatever the letter case.
const Schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id                   UUID PRIMARY KEY,
	first_name           VARCHAR(100) NOT NULL,
	last_name            VARCHAR(100) NOT NULL,
	email                VARCHAR(150) NOT NULL,
	phone_number         VARCHAR(20)  NOT NULL,
	call_time_preference SMALLINT     NULL CHECK (call_time_preference BETWEEN 1 AND 4),
	linkedin_url         VARCHAR(255) NULL,
	github_url           VARCHAR(255) NULL,
	comments             VARCHAR(2000) NULL,
	created_at           TIMESTAMPTZ  NOT NULL,
	updated_at           TIMESTAMPTZ  NULL
);

DROP INDEX IF EXISTS ux_candidates_email;
CREATE UNIQUE INDEX IF NOT EXISTS ux_candidates_email_lower ON candidates (lower(email));
`

// SeedCandidates returns the sample rows inserted by `migrate -seed`.
func SeedCandidates(now time.Time) []domain.Candidate {
	na := "NA"
	return []domain.Candidate{
		{
			ID:          uuid.New(),
			FirstName:   "Asem",
			LastName:    "Adel",
			Email:       "asem.adel00@gmail.com",
			PhoneNumber: "+201061103073",
			Comments:    &na,
			CreatedAt:   now.UTC(),
		},
		{
			ID:          uuid.New(),
			FirstName:   "Hadeer",
			LastName:    "Adam",
			Email:       "hadeer.adam@gmail.com",
			PhoneNumber: "+201000911876",
			Comments:    &na,
			CreatedAt:   now.UTC(),
		},
	}
}
