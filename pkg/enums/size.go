package enums

import (
	"fmt"
	"strings"
)

// Size is a garment size label.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// validSizes is ordered smallest to largest; facets rely on this order.
var validSizes = []Size{
	SizeXS,
	SizeS,
	SizeM,
	SizeL,
	SizeXL,
	SizeXXL,
}

// Sizes returns every known size in display order.
func Sizes() []Size {
	out := make([]Size, len(validSizes))
	copy(out, validSizes)
	return out
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Size.
func (s Size) IsValid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of the size in display order, or -1.
func (s Size) Rank() int {
	for i, candidate := range validSizes {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ParseSize converts raw input into a Size. Matching ignores case and surrounding space.
func ParseSize(value string) (Size, error) {
	normalized := Size(strings.ToUpper(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid size %q", value)
}
