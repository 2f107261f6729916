package costing

import (
	"errors"
	"strings"
)

// ErrUnknownSize is returned when a size label is not part of the fixed set.
var ErrUnknownSize = errors.New("costing: unknown size")

// Size is a product size label.
type Size string

const (
	SizeSmall      Size = "P"
	SizeMedium     Size = "M"
	SizeLarge      Size = "G"
	SizeFamily     Size = "F"
	SizeExtraLarge Size = "GG"
)

const (
	// DefaultMarginPct is the markup applied to new recipes.
	DefaultMarginPct = 50.0
	// DefaultOverhead is the fixed per-unit charge applied to new recipes.
	DefaultOverhead = 5.0
)

var sizes = []Size{SizeSmall, SizeMedium, SizeLarge, SizeFamily, SizeExtraLarge}

var defaultPackaging = map[Size]float64{
	SizeSmall:      1.50,
	SizeMedium:     1.80,
	SizeLarge:      2.20,
	SizeFamily:     3.50,
	SizeExtraLarge: 2.50,
}

// Sizes returns the size labels in display order.
func Sizes() []Size {
	out := make([]Size, len(sizes))
	copy(out, sizes)
	return out
}

// ParseSize resolves a size label, ignoring case and surrounding space.
func ParseSize(value string) (Size, error) {
	candidate := Size(strings.ToUpper(strings.TrimSpace(value)))
	if candidate.Index() < 0 {
		return "", ErrUnknownSize
	}
	return candidate, nil
}

// Index returns the display position of s, or -1 when s is not a known size.
func (s Size) Index() int {
	for i, candidate := range sizes {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the fixed sizes.
func (s Size) Valid() bool {
	return s.Index() >= 0
}

func (s Size) String() string {
	return string(s)
}

// DefaultPackaging returns the packaging cost suggested for a new size sheet.
func DefaultPackaging(s Size) float64 {
	return defaultPackaging[s]
}
