package parser

import (
	messages "github.com/cucumber/messages/go/v21"
)

// Transform converts a Cucumber Gherkin document into a Feature. lineMap maps
// the document's line numbers to the raw input; nil keeps them unchanged.
//
// Tags and step arguments are dropped. Backgrounds, rules and scenario
// outlines are rejected.
func Transform(doc *messages.GherkinDocument, lineMap []int) (*Feature, error) {
	if doc == nil || doc.Feature == nil {
		return nil, &ParseError{Message: "no Feature: header found"}
	}

	f := &Feature{
		Name:        doc.Feature.Name,
		Description: doc.Feature.Description,
	}

	for _, child := range doc.Feature.Children {
		switch {
		case child.Background != nil:
			return nil, unsupported(child.Background.Location, lineMap, "Background is not supported")
		case child.Rule != nil:
			return nil, unsupported(child.Rule.Location, lineMap, "Rule is not supported")
		case child.Scenario != nil:
			sc := child.Scenario
			if len(sc.Examples) > 0 {
				return nil, unsupported(sc.Location, lineMap, "Scenario Outline is not supported")
			}
			f.Scenarios = append(f.Scenarios, transformScenario(sc, lineMap))
		}
	}

	return f, nil
}

func transformScenario(sc *messages.Scenario, lineMap []int) Scenario {
	s := Scenario{
		Name: sc.Name,
		Line: lineOf(sc.Location, lineMap),
	}
	for _, step := range sc.Steps {
		s.Steps = append(s.Steps, Step{Keyword: step.Keyword, Text: step.Text})
	}
	return s
}

func unsupported(loc *messages.Location, lineMap []int, msg string) *ParseError {
	return &ParseError{Line: lineOf(loc, lineMap), Message: msg}
}

func lineOf(loc *messages.Location, lineMap []int) int {
	if loc == nil {
		return 0
	}
	return originalLine(lineMap, int(loc.Line))
}
