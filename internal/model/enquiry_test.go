package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range KnownStatuses {
		assert.True(t, IsValidStatus(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "NEW", "pending", "in-progress", "done"}
	for _, s := range invalid {
		assert.False(t, IsValidStatus(s), "expected %q to be invalid", s)
	}
}

func TestListFilterOffset(t *testing.T) {
	tests := []struct {
		name   string
		filter ListFilter
		want   int
	}{
		{"first page", ListFilter{Page: 1, Limit: 20}, 0},
		{"second page", ListFilter{Page: 2, Limit: 20}, 20},
		{"small limit", ListFilter{Page: 5, Limit: 3}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Offset())
		})
	}
}
