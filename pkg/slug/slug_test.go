// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritikadev/kritika/pkg/slug"
)

/*
TestFrom covers the normalization pipeline: accents, case, punctuation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Movies", "movies"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"multi_space", "a   b", "a-b"},
		{"leading_trailing", "  trimmed  ", "trimmed"},
		{"digits", "Top 10 of 2024", "top-10-of-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
