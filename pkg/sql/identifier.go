// Package sql checks identifiers supplied by clients before they reach a
// database or a generated file.
package sql

import (
	"fmt"
	"strings"
	"unicode"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
)

// MaxIdentifierLength bounds a qualified table name.
const MaxIdentifierLength = 128

// ValidateTableName checks a table name of the form "table" or "schema.table".
// Names that libinjection fingerprints as SQL, or that contain characters
// outside letters, digits, '_' and '$', fail with apperrors.ErrInvalidIdentifier.
func ValidateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: table name is empty", apperrors.ErrInvalidIdentifier)
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("%w: table name exceeds %d characters", apperrors.ErrInvalidIdentifier, MaxIdentifierLength)
	}
	if isSQLi, fingerprint := libinjection.IsSQLi(name); isSQLi {
		return fmt.Errorf("%w: table name %q looks like SQL (fingerprint %s)", apperrors.ErrInvalidIdentifier, name, fingerprint)
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return fmt.Errorf("%w: table name %q has more than one qualifier", apperrors.ErrInvalidIdentifier, name)
	}
	for _, part := range parts {
		if err := validatePart(part); err != nil {
			return fmt.Errorf("%w: table name %q: %s", apperrors.ErrInvalidIdentifier, name, err)
		}
	}
	return nil
}

func validatePart(part string) error {
	if part == "" {
		return fmt.Errorf("empty name part")
	}
	for i, r := range part {
		switch {
		case r == '_', r == '$', unicode.IsLetter(r):
		case unicode.IsDigit(r):
			if i == 0 {
				return fmt.Errorf("name part %q starts with a digit", part)
			}
		default:
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}
