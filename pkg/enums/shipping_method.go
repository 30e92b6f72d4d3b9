package enums

import "fmt"

// ShippingMethod is the delivery option picked at checkout.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

var validShippingMethods = []ShippingMethod{
	ShippingStandard,
	ShippingExpress,
}

// ShippingMethods returns every known method, standard first.
func ShippingMethods() []ShippingMethod {
	out := make([]ShippingMethod, len(validShippingMethods))
	copy(out, validShippingMethods)
	return out
}

// String implements fmt.Stringer.
func (m ShippingMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ShippingMethod.
func (m ShippingMethod) IsValid() bool {
	for _, candidate := range validShippingMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseShippingMethod converts raw input into a ShippingMethod.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	for _, candidate := range validShippingMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping method %q", value)
}
