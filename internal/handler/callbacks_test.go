package handler

import (
	"testing"

	"wordlearner/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParsePageData(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedTab  domain.Tab
		expectedPage int
		expectedOK   bool
	}{
		{"review page", "page_review_2", domain.TabReview, 2, true},
		{"learned page", "page_learned_10", domain.TabLearned, 10, true},
		{"round trip", pageData(domain.TabReview, 3), domain.TabReview, 3, true},
		{"unknown tab", "page_trash_1", "", 0, false},
		{"missing page", "page_review", "", 0, false},
		{"zero page", "page_review_0", "", 0, false},
		{"not a number", "page_review_x", "", 0, false},
		{"wrong prefix", "day_2024-01-01", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, page, ok := parsePageData(tt.input)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedTab, tab)
			assert.Equal(t, tt.expectedPage, page)
		})
	}
}

func TestParseResetData(t *testing.T) {
	const id = "0b5c2b0e-7a4e-4c9b-9f55-2f7d1f0e6a11"

	tests := []struct {
		name        string
		input       string
		expectedTab domain.Tab
		expectedID  string
		expectedOK  bool
	}{
		{"review word", "reset_review_" + id, domain.TabReview, id, true},
		{"round trip", resetData(domain.TabLearned, id), domain.TabLearned, id, true},
		{"id with underscore", "reset_learned_a_b", domain.TabLearned, "a_b", true},
		{"missing id", "reset_review_", "", "", false},
		{"unknown tab", "reset_archive_" + id, "", "", false},
		{"wrong prefix", "page_review_1", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, wordID, ok := parseResetData(tt.input)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedTab, tab)
			assert.Equal(t, tt.expectedID, wordID)
		})
	}
}

func TestResetData_FitsCallbackLimit(t *testing.T) {
	data := "\f" + resetData(domain.TabLearned, "0b5c2b0e-7a4e-4c9b-9f55-2f7d1f0e6a11")
	assert.LessOrEqual(t, len(data), 64)
}
