package parser

import "fmt"

// Feature is the requirements document parsed from Gherkin text.
type Feature struct {
	Name        string
	Description string // lines joined with "\n", empty when absent
	Scenarios   []Scenario
}

type Scenario struct {
	Name  string
	Steps []Step
	Line  int // 1-based line number of the Scenario: line in the raw input
}

type Step struct {
	Keyword string // verbatim, including the trailing space, e.g. "Given "
	Text    string
}

// ParseError reports Gherkin text that cannot be turned into a Feature.
type ParseError struct {
	Line    int // 1-based, 0 when unknown
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}
