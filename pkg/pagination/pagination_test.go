// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelfmark/pkg/pagination"
)

/*
TestNormalize verifies the clamping policy for raw page/size values.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults_pass_through", 0, 20, 0, 20, 0},
		{"second_page", 1, 20, 1, 20, 20},
		{"negative_page_clamped", -3, 10, 0, 10, 0},
		{"zero_size_defaulted", 2, 0, 2, 20, 40},
		{"negative_size_defaulted", 0, -5, 0, 20, 0},
		{"oversized_capped", 1, 500, 1, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Normalize(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
			assert.Equal(t, tt.wantOffset, params.Offset())
		})
	}
}

/*
TestFromRequest parses query parameters with fallbacks for garbage input.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{"absent_params", "/books", 0, 20},
		{"explicit_params", "/books?page=3&size=50", 3, 50},
		{"garbage_params", "/books?page=abc&size=xyz", 0, 20},
		{"negative_params", "/books?page=-1&size=-1", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}
}

/*
TestNewMeta checks total page derivation, including the partial last page.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(0, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 41, meta.Total)

	empty := pagination.NewMeta(0, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
