// Package converter turns Gherkin text into test skeleton files.
package converter

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chriserin/gherkinstub/internal/generator"
	"github.com/chriserin/gherkinstub/internal/merger"
	"github.com/chriserin/gherkinstub/internal/naming"
	"github.com/chriserin/gherkinstub/internal/parser"
)

// DefaultLocation is the target directory used when Options.Location is empty.
const DefaultLocation = "."

// Options configure a Converter.
type Options struct {
	Location    string // target source directory
	PackageName string // dotted, e.g. "a.b.c"
	Convention  naming.Convention
	// StrictNames fails a conversion whose scenarios produce the same method
	// name instead of logging a warning.
	StrictNames bool
}

// Converter runs parse, generate and merge for one feature at a time. It
// holds no state between calls.
type Converter struct {
	opts Options
	log  logrus.FieldLogger
}

// New returns a Converter. A nil log discards all output.
func New(opts Options, log logrus.FieldLogger) *Converter {
	if opts.Location == "" {
		opts.Location = DefaultLocation
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Converter{opts: opts, log: log}
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert parses text and writes its test class below Options.Location.
func (c *Converter) Convert(text string) (*merger.Result, error) {
	f, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing feature: %w", err)
	}
	return c.ConvertFeature(f)
}

// ConvertFile converts the feature file at path.
func (c *Converter) ConvertFile(path string) (*merger.Result, error) {
	f, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c.ConvertFeature(f)
}

// ConvertFeature writes the test class for an already parsed feature.
func (c *Converter) ConvertFeature(f *parser.Feature) (*merger.Result, error) {
	class, err := generator.Generate(f, c.opts.PackageName, c.opts.Convention)
	if err != nil {
		return nil, err
	}
	log := c.log.WithFields(logrus.Fields{"feature": f.Name, "class": class.Name})

	if dups := generator.Duplicates(class); len(dups) > 0 {
		if c.opts.StrictNames {
			return nil, &generator.CollisionError{Class: class.Name, Names: dups}
		}
		log.WithField("method", strings.Join(dups, ",")).Warn("scenarios produce duplicate method names")
	}

	res, err := merger.Write(class, c.opts.Location)
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", class.Name, err)
	}

	log = log.WithField("path", res.Path)
	switch {
	case res.Untouched:
		log.Warn("file exists but does not declare the class, left untouched")
	case res.Created:
		log.Info("created test file")
	case len(res.Added) > 0:
		log.Info("appended methods")
	default:
		log.Debug("file up to date")
	}
	for _, m := range res.Added {
		log.WithField("method", m).Debug("method added")
	}
	for _, m := range res.Skipped {
		log.WithField("method", m).Debug("method exists, skipped")
	}
	return res, nil
}
