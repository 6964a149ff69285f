package service

import (
	"github.com/msomdec/reelnotes/internal/domain"
	"github.com/msomdec/reelnotes/internal/validate"
)

// check runs struct tag validation and converts failures into a
// *domain.ValidationError.
func check(in any) error {
	if fields := validate.Map(in); len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func invalid(field, msg string) error {
	return &domain.ValidationError{Fields: map[string]string{field: msg}}
}
