package validation_test

import (
	"strings"
	"testing"

	"candidatehub-backend/internal/domain"
	"candidatehub-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() domain.CandidateInput {
	return domain.CandidateInput{
		FirstName:   "Hadeer",
		LastName:    "Adam",
		Email:       "hadeer.adam@gmail.com",
		PhoneNumber: "+201000911876",
	}
}

func messages(t *testing.T, in domain.CandidateInput) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, f := range validation.Struct(validation.New(), &in) {
		out[f.Field] = f.Message
	}
	return out
}

func TestCandidateInputValidation(t *testing.T) {
	v := validation.New()

	t.Run("Should accept a valid candidate", func(t *testing.T) {
		in := validInput()
		assert.Nil(t, validation.Struct(v, &in))
	})

	t.Run("Should accept every call time preference", func(t *testing.T) {
		for _, p := range []domain.CallTimePreference{
			domain.CallTimeMorning, domain.CallTimeAfternoon, domain.CallTimeEvening, domain.CallTimeAnyTime,
		} {
			in := validInput()
			in.CallTimePreference = &p
			assert.Nil(t, validation.Struct(v, &in), p.String())
		}
	})

	t.Run("Should require the mandatory fields", func(t *testing.T) {
		got := messages(t, domain.CandidateInput{})
		assert.Equal(t, "First name is required", got["first_name"])
		assert.Equal(t, "Last name is required", got["last_name"])
		assert.Equal(t, "Email is required", got["email"])
		assert.Equal(t, "Phone number is required", got["phone_number"])
	})

	t.Run("Should treat whitespace names as missing", func(t *testing.T) {
		in := validInput()
		in.FirstName = "   "
		assert.Equal(t, "First name is required", messages(t, in)["first_name"])
	})

	t.Run("Should enforce length limits", func(t *testing.T) {
		in := validInput()
		in.LastName = strings.Repeat("a", 101)
		comments := strings.Repeat("c", 2001)
		in.Comments = &comments
		got := messages(t, in)
		assert.Equal(t, "Last name must be 100 characters or fewer", got["last_name"])
		assert.Equal(t, "Comments must be 2000 characters or fewer", got["comments"])
	})

	t.Run("Should reject malformed email and phone", func(t *testing.T) {
		in := validInput()
		in.Email = "not-an-email"
		in.PhoneNumber = "0123"
		got := messages(t, in)
		assert.Equal(t, "Invalid email format", got["email"])
		assert.Equal(t, "Invalid phone number format!", got["phone_number"])
	})

	t.Run("Should reject an out of range call time preference", func(t *testing.T) {
		in := validInput()
		p := domain.CallTimePreference(0)
		in.CallTimePreference = &p
		got := messages(t, in)
		require.Contains(t, got, "call_time_preference")
		assert.Contains(t, got["call_time_preference"], "Morning, Afternoon, Evening, AnyTime")
	})
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	fields := validation.FormatValidationErrors(assert.AnError)
	require.Len(t, fields, 1)
	assert.Equal(t, assert.AnError.Error(), fields[0].Message)
}
