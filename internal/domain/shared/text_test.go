package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
		valid    bool
	}{
		{"", "", true},
		{"   ", "", true},
		{" Ana@Grafica.COM ", "ana@grafica.com", true},
		{"not-an-email", "", false},
		{"a@b.c", "", false},
		{strings.Repeat("a", 195) + "@x.com", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeEmail(tt.in)
		if !tt.valid {
			assert.Equal(t, "INVALID_EMAIL", CodeOf(err), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestMaxLength(t *testing.T) {
	assert.NoError(t, MaxLength("INVALID_PHONE", "Phone", "12345", 5))

	err := MaxLength("INVALID_PHONE", "Phone", "123456", 5)
	assert.Equal(t, "INVALID_PHONE", CodeOf(err))
	assert.EqualError(t, err, "Phone cannot exceed 5 characters")
}
