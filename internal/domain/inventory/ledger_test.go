package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{"positive", 3, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(0))
	assert.NoError(t, ValidateQuantity(12))
	assert.ErrorIs(t, ValidateQuantity(-1), shared.ErrInvalidInput)
}

func TestInsufficientStockError(t *testing.T) {
	id := uuid.New()
	err := InsufficientStockError(id, 6, 5)

	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Contains(t, err.Error(), id.String())
	assert.Contains(t, err.Error(), "requested 6, available 5")
}
