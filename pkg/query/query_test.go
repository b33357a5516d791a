package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritikadev/kritika/pkg/query"
)

/*
TestStringSlice verifies comma splitting, whitespace trimming, and that
empty inputs produce a nil slice.
*/
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "drama", []string{"drama"}},
		{"multiple", "drama,sci-fi", []string{"drama", "sci-fi"}},
		{"trims_whitespace", " drama , sci-fi ", []string{"drama", "sci-fi"}},
		{"drops_empty_entries", "drama,,sci-fi,", []string{"drama", "sci-fi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}
