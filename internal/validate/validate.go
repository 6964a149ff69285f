// Package validate turns validator struct tags into field->message maps
// suitable for JSON error bodies.
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// maxbytes limits the encoded length of a string; max counts runes.
	if err := val.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return val
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Map returns field->message errors for struct validation tags, or nil when
// the struct is valid.
func Map(s any) map[string]string {
	if err := v.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			m := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				if _, seen := m[fieldName(fe)]; seen {
					continue
				}
				m[fieldName(fe)] = messageFor(fe)
			}
			return m
		}
		return map[string]string{"_error": err.Error()}
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}
	return toLowerFirst(fe.StructField())
}

func toLowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return fe.Error()
	}
}
