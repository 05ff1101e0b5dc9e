package parser

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

// Gherkin errors look like "(2:1): expected: #EOF, ..., got 'x'".
var gherkinErrorPattern = regexp.MustCompile(`\((\d+):\d+\): (.+)`)

// Parse parses Gherkin text into a Feature. Lines are trimmed and blank lines
// dropped before the grammar sees them.
func Parse(text string) (*Feature, error) {
	normalized, lineMap := normalize(text)

	doc, err := gherkin.ParseGherkinDocument(strings.NewReader(normalized), (&messages.Incrementing{}).NewId)
	if err != nil {
		return nil, grammarError(err, lineMap)
	}

	return Transform(doc, lineMap)
}

// ParseFile reads and parses a .feature file.
func ParseFile(path string) (*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data))
}

// Normalize trims leading and trailing whitespace from every line, including
// non-breaking spaces, tabs and byte-order marks, and removes lines that end
// up empty.
func Normalize(text string) string {
	normalized, _ := normalize(text)
	return normalized
}

// normalize also returns, for every kept line, its 1-based line number in text.
func normalize(text string) (string, []int) {
	var kept []string
	var lineMap []int
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimFunc(line, isBlank)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
		lineMap = append(lineMap, i+1)
	}
	return strings.Join(kept, "\n"), lineMap
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff' || r == '\u200b'
}

// originalLine maps a 1-based line of the normalized text back to the input.
func originalLine(lineMap []int, line int) int {
	if line >= 1 && line <= len(lineMap) {
		return lineMap[line-1]
	}
	return line
}

func grammarError(err error, lineMap []int) *ParseError {
	for _, line := range strings.Split(err.Error(), "\n") {
		m := gherkinErrorPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		return &ParseError{Line: originalLine(lineMap, n), Message: m[2]}
	}
	return &ParseError{Message: err.Error()}
}
