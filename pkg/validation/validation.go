// Package validation builds the struct validator shared by request bodies,
// checkout details and the seed catalog, and turns its failures into
// per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shahzada-shah/flow-studios/pkg/enums"
)

var phonePattern = regexp.MustCompile(`^[\d\s()+-]{10,}$`)

// New returns a validator that names fields by their json tag and knows the
// storefront rules: phone, shipping_method and size.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "":
			return f.Name
		case "-":
			return ""
		}
		return name
	})
	rules := map[string]validator.Func{
		"phone": func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
		"shipping_method": func(fl validator.FieldLevel) bool {
			return enums.ShippingMethod(fl.Field().String()).IsValid()
		},
		"size": func(fl validator.FieldLevel) bool {
			return enums.Size(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s rule: %v", tag, err))
		}
	}
	return v
}

// FieldErrors maps each failing field to a message. ok is false when err is
// not a validation failure.
func FieldErrors(err error) (map[string]string, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, false
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = Message(fe)
	}
	return out, true
}

// Message renders a single field failure.
func Message(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", fe.Param(), unit)
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "phone":
		return "must contain at least 10 digits, spaces or ()+-"
	case "shipping_method":
		return "must be one of " + joinValues(enums.ShippingMethods())
	case "size":
		return "must be one of " + joinValues(enums.Sizes())
	}
	return "is invalid"
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
