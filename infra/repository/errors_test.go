package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"foreign key", gorm.ErrForeignKeyViolated, domain.ErrConflict},
		{"joined duplicate key", errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), domain.ErrAlreadyExists},
		{"wrapped not found", fmt.Errorf("get account: %w", gorm.ErrRecordNotFound), domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.expected)
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapGormErrorToDomain(nil))
	})

	t.Run("unmapped errors are returned as is", func(t *testing.T) {
		t.Parallel()
		original := errors.New("connection refused")
		assert.Equal(t, original, MapGormErrorToDomain(original))
		assert.False(t, domain.IsBusiness(MapGormErrorToDomain(original)))
	})
}

func TestWrapNotFound(t *testing.T) {
	t.Parallel()
	notFound := domain.NewError(domain.ErrNotFound, "widget not found")

	err := WrapNotFound(func() error { return gorm.ErrRecordNotFound }, notFound)
	assert.Same(t, notFound, err)

	err = WrapNotFound(func() error { return gorm.ErrDuplicatedKey }, notFound)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	assert.NoError(t, WrapNotFound(func() error { return nil }, notFound))
}

func TestWrapError_Panics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic to propagate")
		}
	}()

	_ = WrapError(func() error {
		panic("test panic")
	})
}
