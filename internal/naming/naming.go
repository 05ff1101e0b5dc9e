// Package naming turns free-text Gherkin phrases into identifiers.
package naming

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Convention selects how scenario names become method identifiers.
type Convention int

const (
	// SnakeCase formats "This is a string" as "this_is_a_string".
	SnakeCase Convention = iota
	// CamelCase formats "This is a string" as "thisIsAString".
	CamelCase
)

func (c Convention) String() string {
	switch c {
	case SnakeCase:
		return "snake"
	case CamelCase:
		return "camel"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention matches s case-insensitively against the known conventions.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "camel", "camel_case", "camelcase":
		return CamelCase, nil
	case "snake", "snake_case", "snakecase":
		return SnakeCase, nil
	}
	return 0, fmt.Errorf("unknown method format %q (use camel or snake)", s)
}

// InvalidNameError reports a phrase that does not yield a usable identifier.
type InvalidNameError struct {
	Phrase string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Phrase, e.Reason)
}

var (
	invalidChars  = regexp.MustCompile(`[^\w$']+`)
	leadingDigits = regexp.MustCompile(`^\d+`)
)

// Sanitize removes every character that is not a word character, '$' or '\'',
// then strips leading digits. Unless capitalizeFirst is set, the first
// remaining character is lower-cased. The result may be empty.
func Sanitize(raw string, capitalizeFirst bool) string {
	result := invalidChars.ReplaceAllString(raw, "")
	result = leadingDigits.ReplaceAllString(result, "")
	if capitalizeFirst {
		return result
	}
	return lowerFirst(result)
}

// ToClassName converts phrase to PascalCase, sanitizes it and appends suffix
// unless the name already ends with it.
func ToClassName(phrase, suffix string) (string, error) {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	name := Sanitize(strings.Join(words, ""), true)
	if name == "" {
		return "", &InvalidNameError{Phrase: phrase, Reason: "no identifier characters left after sanitizing"}
	}
	if !strings.HasSuffix(name, suffix) {
		name += suffix
	}
	return name, nil
}

// ToMethodName formats phrase with the given convention and sanitizes the
// result. Formatting runs before sanitizing so that word boundaries are taken
// from the original whitespace.
func ToMethodName(phrase string, c Convention) (string, error) {
	var formatted string
	switch c {
	case CamelCase:
		words := strings.Fields(phrase)
		for i, w := range words {
			if i == 0 {
				words[i] = lowerFirst(w)
				continue
			}
			words[i] = upperFirst(w)
		}
		formatted = strings.Join(words, "")
	case SnakeCase:
		formatted = strings.Join(strings.Fields(strings.ToLower(phrase)), "_")
	default:
		return "", fmt.Errorf("unknown convention %s", c)
	}

	name := Sanitize(formatted, false)
	if name == "" {
		return "", &InvalidNameError{Phrase: phrase, Reason: "no identifier characters left after sanitizing"}
	}
	return name, nil
}

// FileName derives the Go test file name of a generated class,
// e.g. "PuttingOnPantsTest" becomes "putting_on_pants_test.go". Underscores
// already in the class name are doubled so "Foo_Test" and "FooTest" get
// different files. The name always ends in "_test.go".
func FileName(className string) string {
	parts := strings.Split(className, "_")
	for i, p := range parts {
		parts[i] = strcase.ToSnake(p)
	}
	name := strings.Join(parts, "__")
	if !strings.HasSuffix(name, "_test") {
		name += "_test"
	}
	return name + ".go"
}

// IsIdentifier reports whether name can be used as a Go identifier.
// Sanitize keeps '$' and '\'', which Go does not accept.
func IsIdentifier(name string) bool {
	return token.IsIdentifier(name)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
