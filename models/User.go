package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	ThemeEmber = "ember"
	ThemeFlour = "flour"
	ThemeBasil = "basil"

	// DefaultTheme is applied to accounts without a stored preference.
	DefaultTheme = ThemeEmber
)

// User represents an application account that can authenticate with the platform.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	Theme        string `gorm:"type:varchar(32);default:ember"`
}

// ValidTheme reports whether value names a supported workspace theme.
func ValidTheme(value string) bool {
	switch value {
	case ThemeEmber, ThemeFlour, ThemeBasil:
		return true
	default:
		return false
	}
}

// NormalizeTheme returns value when it is a supported theme and DefaultTheme otherwise.
func NormalizeTheme(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if ValidTheme(trimmed) {
		return trimmed
	}
	return DefaultTheme
}
