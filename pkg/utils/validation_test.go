package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchTerm(t *testing.T) {
	got, err := ValidateSearchTerm("  dental clinics in Lahore \n")
	require.NoError(t, err)
	assert.Equal(t, "dental clinics in Lahore", got)

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := ValidateSearchTerm(raw)
		assert.ErrorIs(t, err, ErrEmptySearchTerm, "input %q", raw)
	}
}

func TestValidateBaseURL(t *testing.T) {
	got, err := ValidateBaseURL(" http://localhost:5000/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", got)

	for _, raw := range []string{"", "localhost:5000", "ftp://host", "http://"} {
		_, err := ValidateBaseURL(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
