package database

import (
	"errors"
	"fmt"
	"testing"

	"realty-marketplace/internal/apperr"

	"gorm.io/gorm"
)

// A second insert of the same (user_id, property_id) pair trips the
// unique index; the resulting gorm.ErrDuplicatedKey must come back as
// the benign ErrAlreadySaved, which handlers report as success.
func TestTranslateSaveError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, apperr.ErrAlreadySaved},
		{"wrapped duplicate key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), apperr.ErrAlreadySaved},
		{"nil passes through", nil, nil},
		{"other errors pass through", gorm.ErrInvalidTransaction, gorm.ErrInvalidTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateSaveError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("translateSaveError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translateSaveError() = %v, want %v", got, tt.want)
			}
		})
	}

	// The mapped error must not collide with the rest of the taxonomy.
	mapped := translateSaveError(gorm.ErrDuplicatedKey)
	if errors.Is(mapped, apperr.ErrNotFound) || errors.Is(mapped, apperr.ErrPermissionDenied) {
		t.Error("ErrAlreadySaved must be distinct from not-found and permission-denied")
	}
}
