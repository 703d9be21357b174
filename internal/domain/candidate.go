package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field identifiers understood by the candidate repository.
const (
	CandidateFieldID        = "id"
	CandidateFieldEmail     = "email"
	CandidateFieldFirstName = "first_name"
	CandidateFieldLastName  = "last_name"
	CandidateFieldCreatedAt = "created_at"
)

// Candidate is the persisted entity. Email is stored normalized and is unique.
type Candidate struct {
	ID                 uuid.UUID           `json:"id"`
	FirstName          string              `json:"first_name" validate:"required,not_blank,max=100"`
	LastName           string              `json:"last_name" validate:"required,not_blank,max=100"`
	Email              string              `json:"email" validate:"required,email,max=150"`
	PhoneNumber        string              `json:"phone_number" validate:"required,max=20,phone_number"`
	CallTimePreference *CallTimePreference `json:"call_time_preference,omitempty" validate:"omitnil,call_time_preference"`
	LinkedInURL        *string             `json:"linkedin_url,omitempty" validate:"omitempty,max=255"`
	GitHubURL          *string             `json:"github_url,omitempty" validate:"omitempty,max=255"`
	Comments           *string             `json:"comments,omitempty" validate:"omitempty,max=2000"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
}

// CandidateInput is the create-or-update request body.
type CandidateInput struct {
	FirstName          string              `json:"first_name" validate:"required,not_blank,max=100"`
	LastName           string              `json:"last_name" validate:"required,not_blank,max=100"`
	Email              string              `json:"email" validate:"required,email,max=150"`
	PhoneNumber        string              `json:"phone_number" validate:"required,max=20,phone_number"`
	CallTimePreference *CallTimePreference `json:"call_time_preference,omitempty" validate:"omitnil,call_time_preference"`
	LinkedInURL        *string             `json:"linkedin_url,omitempty" validate:"omitempty,max=255"`
	GitHubURL          *string             `json:"github_url,omitempty" validate:"omitempty,max=255"`
	Comments           *string             `json:"comments,omitempty" validate:"omitempty,max=2000"`
}

// CandidateResponse is the external representation returned by the API.
type CandidateResponse struct {
	ID                 uuid.UUID           `json:"id"`
	FirstName          string              `json:"first_name"`
	LastName           string              `json:"last_name"`
	Email              string              `json:"email"`
	PhoneNumber        string              `json:"phone_number"`
	CallTimePreference *CallTimePreference `json:"call_time_preference,omitempty"`
	LinkedInURL        *string             `json:"linkedin_url,omitempty"`
	GitHubURL          *string             `json:"github_url,omitempty"`
	Comments           *string             `json:"comments,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
}

// NormalizeEmail trims and lower-cases an email so it can be used as the natural key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewCandidate builds a fresh entity from input. The caller stamps CreatedAt.
func NewCandidate(in *CandidateInput) *Candidate {
	c := &Candidate{ID: uuid.New()}
	c.apply(in)
	return c
}

// ApplyUpdate overwrites every mutable field from input. ID and CreatedAt are kept.
func (c *Candidate) ApplyUpdate(in *CandidateInput, now time.Time) {
	c.apply(in)
	c.UpdatedAt = &now
}

func (c *Candidate) apply(in *CandidateInput) {
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = NormalizeEmail(in.Email)
	c.PhoneNumber = in.PhoneNumber
	c.CallTimePreference = in.CallTimePreference
	c.LinkedInURL = in.LinkedInURL
	c.GitHubURL = in.GitHubURL
	c.Comments = in.Comments
}

func (c *Candidate) ToResponse() CandidateResponse {
	return CandidateResponse{
		ID:                 c.ID,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		Email:              c.Email,
		PhoneNumber:        c.PhoneNumber,
		CallTimePreference: c.CallTimePreference,
		LinkedInURL:        c.LinkedInURL,
		GitHubURL:          c.GitHubURL,
		Comments:           c.Comments,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

type CandidateUsecase interface {
	CreateOrUpdate(ctx context.Context, in *CandidateInput) (*CandidateResponse, error)
	// GetByEmail reports found=false when no candidate has the normalized email.
	GetByEmail(ctx context.Context, email string) (*CandidateResponse, bool, error)
	// GetAll never returns a nil slice.
	GetAll(ctx context.Context) ([]CandidateResponse, error)
}
