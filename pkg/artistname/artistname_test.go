// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artistname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/artdex/pkg/artistname"
)

/*
TestNormalize checks the trim/collapse/lowercase pipeline.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trim_and_collapse", "  AAA BBB  ", "aaa_bbb"},
		{"already_canonical", "aaa_bbb", "aaa_bbb"},
		{"multiple_spaces", "a   b\t c", "a_b_c"},
		{"fullwidth_fold", "ＡＢＣ", "abc"},
		{"empty", "", ""},
		{"whitespace_only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, artistname.Normalize(tt.input))
		})
	}
}

/*
TestNormalizeOtherNames verifies primary-name exclusion, case-insensitive
dedup, and order preservation.
*/
func TestNormalizeOtherNames(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		input    []string
		expected []string
	}{
		{
			name:     "dedup_and_primary_drop",
			primary:  "a1",
			input:    []string{"a1 aaa aaa AAA bbb ccc_ddd"},
			expected: []string{"aaa", "bbb", "ccc_ddd"},
		},
		{
			name:     "multiple_entries",
			primary:  "main",
			input:    []string{"alias_one", "alias_two", "Alias_One"},
			expected: []string{"alias_one", "alias_two"},
		},
		{
			name:     "empty_input",
			primary:  "main",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "primary_case_insensitive",
			primary:  "Main Name",
			input:    []string{"MAIN_NAME other"},
			expected: []string{"other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, artistname.NormalizeOtherNames(tt.primary, tt.input))
		})
	}
}
