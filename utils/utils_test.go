package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected bool
	}{
		{
			name:     "local format",
			phone:    "01712345678",
			expected: true,
		},
		{
			name:     "international prefix",
			phone:    "+8801712345678",
			expected: true,
		},
		{
			name:     "surrounding whitespace trimmed",
			phone:    " 01712345678 ",
			expected: true,
		},
		{
			name:     "too short",
			phone:    "0171234567",
			expected: false,
		},
		{
			name:     "too long",
			phone:    "017123456789",
			expected: false,
		},
		{
			name:     "wrong prefix",
			phone:    "02712345678",
			expected: false,
		},
		{
			name:     "letters rejected",
			phone:    "01712abc678",
			expected: false,
		},
		{
			name:     "empty",
			phone:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidatePhoneNumber(tt.phone))
		})
	}
}
