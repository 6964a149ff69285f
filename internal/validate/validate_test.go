package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/reelnotes/internal/validate"
)

type signupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rating   *int   `json:"rating" validate:"omitempty,min=1,max=10"`
}

func TestMap_Valid(t *testing.T) {
	require.Nil(t, validate.Map(signupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))
}

func TestMap_FieldMessages(t *testing.T) {
	bad := 11
	errs := validate.Map(signupInput{Email: "nope", Password: "abc", Rating: &bad})

	require.Equal(t, "is required", errs["name"])
	require.Equal(t, "must be a valid email address", errs["email"])
	require.Equal(t, "must be at least 6 characters", errs["password"])
	require.Equal(t, "must be at most 10", errs["rating"])
}

func TestMap_OptionalPointerSkipped(t *testing.T) {
	errs := validate.Map(signupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1", Rating: nil})
	require.Nil(t, errs)
}

func TestMap_MaxBytesCountsBytesNotRunes(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"maxbytes=72"`
	}

	require.Nil(t, validate.Map(in{Password: strings.Repeat("a", 72)}))
	require.Nil(t, validate.Map(in{Password: strings.Repeat("é", 36)}))

	errs := validate.Map(in{Password: strings.Repeat("é", 37)})
	require.Equal(t, "must be at most 72 bytes", errs["password"])
}
