package language

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinNameLength and MaxNameLength bound a language name in runes.
	MinNameLength = 2
	MaxNameLength = 32
)

var (
	// ErrInvalidName indicates a language name failed validation.
	ErrInvalidName = errors.New("invalid language name")
	// ErrLanguageNotFound indicates the requested language does not exist.
	ErrLanguageNotFound = errors.New("language not found")
	// ErrLanguageExists indicates a language already exists during bootstrap.
	ErrLanguageExists = errors.New("language already exists")
)

// namePattern matches a valid canonical language name. Names become
// directory names and child-process working directories, so the format is
// deliberately strict: lowercase ASCII letters only.
var namePattern = regexp.MustCompile(`^[a-z]+$`)

// Canonical lowercases a language name for use as a directory name.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateName validates a canonical language name.
// Returns nil if valid, ErrInvalidName with details if invalid.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return fmt.Errorf("%w: must be %d to %d characters", ErrInvalidName, MinNameLength, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q (must be lowercase letters only)", ErrInvalidName, name)
	}
	return nil
}

// Display capitalizes a canonical name for presentation.
func Display(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
