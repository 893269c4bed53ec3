package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClassification(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			"full payload",
			`{"ingredients":["chicken","rice"],"cuisine_type":"Japanese","category":"Main Dish"}`,
			false,
		},
		{
			"missing fields are acceptable",
			`{}`,
			false,
		},
		{
			"extra fields tolerated",
			`{"ingredients":[],"cuisine_type":"Other","category":"Other","confidence":0.9}`,
			false,
		},
		{
			"ingredients must be strings",
			`{"ingredients":[1,2,3]}`,
			true,
		},
		{
			"ingredients must be an array",
			`{"ingredients":"chicken"}`,
			true,
		},
		{
			"cuisine_type must be a string",
			`{"cuisine_type":42}`,
			true,
		},
		{
			"payload must be an object",
			`["a","b"]`,
			true,
		},
		{
			"malformed JSON",
			`{"ingredients":`,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClassification([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateClassification_FieldErrors(t *testing.T) {
	err := ValidateClassification([]byte(`{"ingredients":[1],"category":7}`))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "validation failed")
}
