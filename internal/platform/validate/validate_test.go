// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "MineVale", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "jogador@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "jogador@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Handle checks the in-game nickname format rule.
*/
func TestValidator_Handle(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"plain", "Steve", true},
		{"with_digits", "Steve_2009", true},
		{"underscore_only", "_", true},
		{"with_space", "Ste ve", false},
		{"with_accent", "João", false},
		{"with_dash", "Steve-BR", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Handle("nickname", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_UUID checks the identifier format rule, both casings.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"lowercase_v7", "0190f1a2-3b4c-7d5e-8f90-123456789abc", true},
		{"uppercase", "0190F1A2-3B4C-7D5E-8F90-123456789ABC", true},
		{"missing_segment", "0190f1a2-3b4c-7d5e-8f90", false},
		{"not_hex", "zzzzzzzz-3b4c-7d5e-8f90-123456789abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("id", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks the closed-set membership rule.
*/
func TestValidator_OneOf(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"member", "vips", true},
		{"other_member", "unban", true},
		{"outsider", "skins", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.OneOf("category", tt.value, "vips", "coins", "unban")

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Equals checks the confirmation rule and its custom message.
*/
func TestValidator_Equals(t *testing.T) {
	v := &validate.Validator{}
	err := v.Equals("confirmPassword", "hunter22", "hunter23", "As senhas não conferem").Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "confirmPassword", ae.Details[0].Field)
	assert.Equal(t, "As senhas não conferem", ae.Details[0].Message)

	match := &validate.Validator{}
	assert.NoError(t, match.Equals("confirmPassword", "hunter22", "hunter22", "As senhas não conferem").Err())
}

/*
TestValidator_Float tests numeric coercion of raw form values.
*/
func TestValidator_Float(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		isValid bool
	}{
		{"integer", "10", 10, true},
		{"decimal", "19.90", 19.90, true},
		{"zero", "0", 0, true},
		{"negative", "-5", -5, true},
		{"padded", " 7.5 ", 7.5, true},
		{"words", "abc", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			var out float64
			v.Float("price", tt.raw, &out)

			if tt.isValid {
				assert.False(t, v.HasErrors())
				assert.Equal(t, tt.want, out)
			} else {
				assert.True(t, v.HasErrors())
				assert.Zero(t, out)
			}
		})
	}
}

/*
TestValidator_MinFloat checks the lower-bound rule used for prices.
*/
func TestValidator_MinFloat(t *testing.T) {
	v := &validate.Validator{}
	v.MinFloat("price", -5, 0)
	assert.True(t, v.HasErrors())

	boundary := &validate.Validator{}
	boundary.MinFloat("price", 0, 0)
	assert.False(t, boundary.HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("nickname", "Steve").
		MinLen("nickname", "Steve", 3).
		MaxLen("nickname", "Steve", 16).
		Handle("nickname", "Steve").
		Email("email", "steve@minevale.com.br").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nickname", "").       // Fails
		MinLen("nickname", "a", 3).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
