// Package naming derives every name the generators need from a table identifier.
// Both the schema generator and the template renderer go through a single
// Converter so persistence-layer and service-layer names cannot drift apart.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
)

// DefaultTablePrefixes is the table-name prefix convention stripped by default.
var DefaultTablePrefixes = []string{"t_"}

// Converter turns table identifiers into model, variable and route names.
// The zero value strips no prefix and does not singularize.
type Converter struct {
	// Prefixes are matched case-insensitively; the first match is stripped.
	Prefixes []string
	// Singularize singularizes the last word ("t_users" -> "User").
	Singularize bool
}

// NewConverter returns a Converter with the given prefixes (DefaultTablePrefixes when nil).
func NewConverter(prefixes []string, singularize bool) *Converter {
	if prefixes == nil {
		prefixes = DefaultTablePrefixes
	}
	return &Converter{Prefixes: prefixes, Singularize: singularize}
}

// TableToUpperCamel converts "t_user_detail" to "UserDetail".
func (c *Converter) TableToUpperCamel(table string) (string, error) {
	words, err := c.words(table)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String(), nil
}

// TableToLowerCamel converts "t_user_detail" to "userDetail".
func (c *Converter) TableToLowerCamel(table string) (string, error) {
	words, err := c.words(table)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String(), nil
}

// words splits table into lower-case segments after stripping the schema
// qualifier and the configured prefix.
func (c *Converter) words(table string) ([]string, error) {
	name := strings.TrimSpace(table)
	if name == "" {
		return nil, fmt.Errorf("%w: table name is empty", apperrors.ErrInvalidIdentifier)
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	for _, prefix := range c.Prefixes {
		if prefix != "" && len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = name[len(prefix):]
			break
		}
	}

	words := strings.FieldsFunc(name, isSeparator)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: table name %q has no words", apperrors.ErrInvalidIdentifier, table)
	}
	for i, w := range words {
		for _, r := range w {
			if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return nil, fmt.Errorf("%w: table name %q contains %q", apperrors.ErrInvalidIdentifier, table, r)
			}
		}
		words[i] = strings.ToLower(w)
	}
	if !unicode.IsLetter(rune(words[0][0])) {
		return nil, fmt.Errorf("%w: table name %q must start with a letter", apperrors.ErrInvalidIdentifier, table)
	}
	if c.Singularize {
		last := len(words) - 1
		words[last] = inflection.Singular(words[last])
	}
	return words, nil
}

// ValidateModelName reports whether name can be used as a Java class name and
// as a file name: an ASCII letter, '_' or '$' followed by ASCII letters,
// digits, '_' or '$'.
func ValidateModelName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: model name is empty", apperrors.ErrInvalidIdentifier)
	}
	for i, r := range name {
		ok := r == '_' || r == '$' || (r <= unicode.MaxASCII && unicode.IsLetter(r)) ||
			(i > 0 && r <= unicode.MaxASCII && unicode.IsDigit(r))
		if !ok {
			return fmt.Errorf("%w: model name %q contains %q", apperrors.ErrInvalidIdentifier, name, r)
		}
	}
	return nil
}

// ModelToMappingPath converts "UserDetail" to the route base "/user-detail".
// Word boundaries sit before an upper-case letter that follows a lower-case
// letter or digit, and before the last upper-case letter of an acronym that is
// followed by a lower-case letter ("HTTPServer" -> "/http-server").
func ModelToMappingPath(model string) string {
	return "/" + strings.Join(splitCamel(model), "-")
}

// ModelToTableName converts "UserDetail" back to "user_detail".
func ModelToTableName(model string) string {
	return strings.Join(splitCamel(model), "_")
}

// ColumnToProperty converts a column name such as "created_at" to "createdAt".
// Columns that carry no separator keep their casing apart from the first rune.
func ColumnToProperty(column string) string {
	words := strings.FieldsFunc(column, isSeparator)
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return lowerFirst(words[0])
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(capitalize(strings.ToLower(w)))
	}
	return b.String()
}

// LowerFirst lower-cases the first rune, turning a model name into a variable name.
func LowerFirst(s string) string {
	return lowerFirst(s)
}

// UpperFirst upper-cases the first rune, turning a property into an accessor suffix.
func UpperFirst(s string) string {
	return capitalize(s)
}

func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		cur, prev := runes[i], runes[i-1]
		if !unicode.IsUpper(cur) {
			continue
		}
		boundary := unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))
		if boundary {
			words = append(words, strings.ToLower(string(runes[start:i])))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, strings.ToLower(string(runes[start:])))
	}
	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
