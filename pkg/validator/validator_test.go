package validator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/pkg/validator"
)

type signupRequest struct {
	To       string `json:"to" validate:"required"`
	URL      string `json:"verification_url" validate:"required"`
	Username string `json:"username,omitempty"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  signupRequest
		fields []string
	}{
		{
			name:  "valid",
			input: signupRequest{To: "a@b.com", URL: "https://x/v/1"},
		},
		{
			name:   "missing one",
			input:  signupRequest{To: "a@b.com"},
			fields: []string{"verification_url"},
		},
		{
			name:   "missing all required",
			input:  signupRequest{Username: "bob"},
			fields: []string{"to", "verification_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.ValidateStruct(tt.input)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}

			require.True(t, validator.IsValidationError(err))
			ve := validator.ExtractValidationErrors(err)
			assert.Equal(t, tt.fields, ve.Fields())
			for _, f := range tt.fields {
				assert.True(t, ve.Has(f))
			}
			assert.Equal(t, "required", ve[0].Rule)
			assert.Equal(t, "is required", ve[0].Message)
		})
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := validator.ValidateStruct("not a struct")
	require.Error(t, err)
	assert.False(t, validator.IsValidationError(err))
	assert.Nil(t, validator.ExtractValidationErrors(err))
}

func TestValidationErrors_Wrapped(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "to", Rule: "required", Message: "is required"},
		{Field: "to", Rule: "email", Message: "must be a valid email address"},
		{Field: "subject", Rule: "required", Message: "is required"},
	}
	wrapped := fmt.Errorf("bind json: %w", errs)

	require.True(t, validator.IsValidationError(wrapped))
	assert.Equal(t, []string{"to", "subject"}, validator.ExtractValidationErrors(wrapped).Fields())
	assert.Equal(t, "to is required; to must be a valid email address; subject is required", errs.Error())
	assert.False(t, errs.Has("html"))
}
