package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-api/internal/domain"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("service.TagService.Create: %w",
		domain.NewValidationError(map[string]string{"name": domain.CodeRequired}))

	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.CodeRequired, verr.Fields["name"])
}

func TestValidationError_MessageIsStable(t *testing.T) {
	err := domain.NewValidationError(map[string]string{
		"zip_code": domain.CodeInvalidZipCode,
		"city":     domain.CodeRequired,
	})

	assert.Equal(t, "validation error: city: required, zip_code: invalid_zip_code", err.Error())
}
