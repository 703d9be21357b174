package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"candidatehub-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", domain.NormalizeEmail("  A@B.Com\t"))
	assert.Equal(t, "", domain.NormalizeEmail("   "))
}

func TestCandidate_ApplyUpdate(t *testing.T) {
	comments := "NA"
	c := domain.NewCandidate(&domain.CandidateInput{
		FirstName:   "Asem",
		LastName:    "Adel",
		Email:       "Asem@Example.com",
		PhoneNumber: "+201061103073",
		Comments:    &comments,
	})
	require.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "asem@example.com", c.Email)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.CreatedAt = created
	id := c.ID

	now := created.Add(time.Hour)
	c.ApplyUpdate(&domain.CandidateInput{
		FirstName:   "Asem",
		LastName:    "Updated",
		Email:       "asem@example.com",
		PhoneNumber: "+201061103073",
	}, now)

	assert.Equal(t, id, c.ID)
	assert.Equal(t, created, c.CreatedAt)
	require.NotNil(t, c.UpdatedAt)
	assert.Equal(t, now, *c.UpdatedAt)
	assert.Equal(t, "Updated", c.LastName)
	assert.Nil(t, c.Comments)
}

func TestCallTimePreference_JSON(t *testing.T) {
	t.Run("Should accept a name or a number", func(t *testing.T) {
		var in domain.CandidateInput
		require.NoError(t, json.Unmarshal([]byte(`{"call_time_preference":"afternoon"}`), &in))
		assert.Equal(t, domain.CallTimeAfternoon, *in.CallTimePreference)

		require.NoError(t, json.Unmarshal([]byte(`{"call_time_preference":4}`), &in))
		assert.Equal(t, domain.CallTimeAnyTime, *in.CallTimePreference)
	})

	t.Run("Should emit the name", func(t *testing.T) {
		p := domain.CallTimeEvening
		out, err := json.Marshal(domain.CandidateResponse{CallTimePreference: &p})
		require.NoError(t, err)
		assert.Contains(t, string(out), `"call_time_preference":"Evening"`)
	})

	t.Run("Should omit an absent preference", func(t *testing.T) {
		out, err := json.Marshal(domain.CandidateResponse{})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "call_time_preference")
	})

	t.Run("Should reject an unknown name", func(t *testing.T) {
		var in domain.CandidateInput
		assert.Error(t, json.Unmarshal([]byte(`{"call_time_preference":"Midnight"}`), &in))
	})
}

func TestParseCallTimePreference(t *testing.T) {
	p, err := domain.ParseCallTimePreference(" MORNING ")
	require.NoError(t, err)
	assert.Equal(t, domain.CallTimeMorning, p)
	assert.True(t, p.IsValid())

	p, err = domain.ParseCallTimePreference("9")
	require.NoError(t, err)
	assert.False(t, p.IsValid())
	assert.Equal(t, "9", p.String())
}

func TestPredicate_And(t *testing.T) {
	base := domain.Eq(domain.CandidateFieldEmail, "a@b.com")
	extended := base.And(domain.CandidateFieldFirstName, domain.OpNotEq, "x")

	assert.Len(t, base.Conditions, 1)
	require.Len(t, extended.Conditions, 2)
	assert.Equal(t, domain.OpNotEq, extended.Conditions[1].Op)
}

func TestCandidateCacheKey(t *testing.T) {
	assert.Equal(t, "candidate:a@b.com", domain.CandidateCacheKey("a@b.com"))
	assert.Equal(t, "candidates:all", domain.AllCandidatesCacheKey)
}
