package catalog

import (
	"fmt"
	"strings"

	"github.com/hfchoice/storefront/internal/shared"
)

func (s *Service) validate(form ProductForm) error {
	if strings.TrimSpace(form.Code) == "" {
		return fmt.Errorf("%w: product code is required", shared.ErrInvalidArgument)
	}
	if strings.TrimSpace(form.Description) == "" {
		return fmt.Errorf("%w: product description is required", shared.ErrInvalidArgument)
	}
	if form.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", shared.ErrInvalidArgument)
	}
	return nil
}
