package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"carbex/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and folds failures into
// domain.ErrValidation with one "field: rule" entry per violation.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), rule))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, ", "))
}
