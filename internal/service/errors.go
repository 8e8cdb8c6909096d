package service

import (
	"errors"

	"github.com/pkordes/catering-api/internal/domain"
)

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, domain.ErrNotFound)
}
