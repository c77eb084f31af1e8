// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package unique_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/unique"
	"github.com/taibuivan/shelfmark/pkg/pointer"
)

/*
TestCheck covers the create and update paths of the advisory uniqueness guard.
*/
func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		existingID  *int64
		excludingID *int64
		wantErr     bool
	}{
		{"value_free_on_create", nil, nil, false},
		{"value_free_on_update", nil, pointer.To(int64(7)), false},
		{"value_taken_on_create", pointer.To(int64(3)), nil, true},
		{"value_owned_by_self", pointer.To(int64(7)), pointer.To(int64(7)), false},
		{"value_owned_by_other", pointer.To(int64(3)), pointer.To(int64(7)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := unique.Check("Book", "isbn", "9780132350884", tt.existingID, tt.excludingID)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
			assert.Contains(t, ae.Message, "isbn")
			assert.Contains(t, ae.Message, "9780132350884")
		})
	}
}
