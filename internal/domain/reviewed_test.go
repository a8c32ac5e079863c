package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReviewedLabel(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		reviewedAt time.Time
		expected   string
	}{
		{
			name:       "today",
			reviewedAt: now.Add(-2 * time.Hour),
			expected:   "Today",
		},
		{
			name:       "yesterday",
			reviewedAt: now.AddDate(0, 0, -1),
			expected:   "Yesterday",
		},
		{
			name:       "two days ago",
			reviewedAt: now.AddDate(0, 0, -2),
			expected:   "13 Jun 2024",
		},
		{
			name:       "specific date",
			reviewedAt: time.Date(2023, 1, 3, 23, 0, 0, 0, time.UTC),
			expected:   "3 Jan 2023",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReviewedLabel(tt.reviewedAt, now))
		})
	}
}
