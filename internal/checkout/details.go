package checkout

import (
	"strings"

	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/validation"
)

// Details are the contact and delivery fields collected at checkout.
type Details struct {
	Email          string               `json:"email" validate:"required,email"`
	FullName       string               `json:"full_name" validate:"required,max=120"`
	Country        string               `json:"country" validate:"required,max=80"`
	City           string               `json:"city" validate:"required,max=80"`
	ZipCode        string               `json:"zip_code" validate:"required,max=20"`
	StreetAddress  string               `json:"street_address" validate:"required,max=200"`
	Apartment      string               `json:"apartment,omitempty" validate:"max=80"`
	Phone          string               `json:"phone,omitempty" validate:"omitempty,phone"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method" validate:"required,shipping_method"`
}

var validate = validation.New()

// Normalize trims every field and lowercases the shipping method.
func (d Details) Normalize() Details {
	d.Email = strings.TrimSpace(d.Email)
	d.FullName = strings.TrimSpace(d.FullName)
	d.Country = strings.TrimSpace(d.Country)
	d.City = strings.TrimSpace(d.City)
	d.ZipCode = strings.TrimSpace(d.ZipCode)
	d.StreetAddress = strings.TrimSpace(d.StreetAddress)
	d.Apartment = strings.TrimSpace(d.Apartment)
	d.Phone = strings.TrimSpace(d.Phone)
	d.ShippingMethod = enums.ShippingMethod(strings.ToLower(strings.TrimSpace(string(d.ShippingMethod))))
	return d
}

// Validate checks the normalised details and reports failures per field.
func (d Details) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	details, ok := validation.FieldErrors(err)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout details").WithDetails(details)
}
