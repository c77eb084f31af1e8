// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/catalog/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

/*
TestResolveSort covers the whitelist mapping, direction parsing, and the
rejection of unknown fields.
*/
func TestResolveSort(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantColumn string
		wantDesc   bool
		wantErr    bool
	}{
		{"empty_uses_default", "", "id", false, false},
		{"field_only_ascending", "title", "title", false, false},
		{"camel_case_mapping", "publishedDate,desc", "publisheddate", true, false},
		{"direction_case_insensitive", "rating,DESC", "rating", true, false},
		{"unknown_direction_is_ascending", "title,descending", "title", false, false},
		{"created_at", "createdAt,desc", "createdat", true, false},
		{"unknown_field_rejected", "publisher", "", false, true},
		{"snake_case_rejected", "published_date", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := book.ResolveSort(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantColumn, spec.Column)
			assert.Equal(t, tt.wantDesc, spec.Desc)
		})
	}
}

/*
TestSortSpec_OrderBy verifies clause rendering including the id tiebreaker.
*/
func TestSortSpec_OrderBy(t *testing.T) {
	spec, err := book.ResolveSort("publishedDate,desc")
	require.NoError(t, err)
	assert.Equal(t, "b.publisheddate DESC, b.id ASC", spec.OrderBy())

	assert.Equal(t, "b.id ASC", book.DefaultSort.OrderBy())
}
