package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  BLS  ", "ALS  ", "  Dispatch"},
			expected: []string{"BLS", "ALS", "Dispatch"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"CPR", "EMT-B", "CPR", "Paramedic", "EMT-B"},
			expected: []string{"CPR", "EMT-B", "Paramedic"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"CPR", "", "  ", "EMT-B"},
			expected: []string{"CPR", "EMT-B"},
		},
		{
			name:     "preserves case",
			input:    []string{"BLS", "bls"},
			expected: []string{"BLS", "bls"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
