// Package generator derives test class skeletons from parsed features.
package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chriserin/gherkinstub/internal/naming"
	"github.com/chriserin/gherkinstub/internal/parser"
)

// ClassSuffix ends every generated class name.
const ClassSuffix = "Test"

// GeneratedClass is the in-memory model of a generated test file.
type GeneratedClass struct {
	Name        string
	PackageName string // dotted, e.g. "a.b.c"
	Doc         string // feature description, empty for none
	Methods     []GeneratedMethod
}

// GeneratedMethod is a placeholder test method for one scenario.
type GeneratedMethod struct {
	Name       string
	Doc        string // one "keyword+text\n" line per step, empty for none
	TestMarked bool
}

// CollisionError reports method names produced by more than one scenario.
type CollisionError struct {
	Class string
	Names []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("class %s: scenarios produce duplicate method names: %s", e.Class, strings.Join(e.Names, ", "))
}

// Generate builds the class for f. Scenarios that format to the same method
// name are all kept; use Duplicates to detect them.
func Generate(f *parser.Feature, packageName string, c naming.Convention) (*GeneratedClass, error) {
	className, err := naming.ToClassName(f.Name, ClassSuffix)
	if err != nil {
		return nil, fmt.Errorf("feature name: %w", err)
	}

	class := &GeneratedClass{
		Name:        className,
		PackageName: packageName,
		Doc:         f.Description,
	}

	for _, sc := range f.Scenarios {
		name, err := naming.ToMethodName(sc.Name, c)
		if err != nil {
			return nil, fmt.Errorf("scenario on line %d: %w", sc.Line, err)
		}
		class.Methods = append(class.Methods, GeneratedMethod{
			Name:       name,
			Doc:        stepDoc(sc.Steps),
			TestMarked: true,
		})
	}

	return class, nil
}

func stepDoc(steps []parser.Step) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteString(s.Keyword + s.Text + "\n")
	}
	return b.String()
}

// Duplicates returns the method names that occur more than once in class,
// sorted.
func Duplicates(class *GeneratedClass) []string {
	counts := make(map[string]int)
	for _, m := range class.Methods {
		counts[m.Name]++
	}
	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}
