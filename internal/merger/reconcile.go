package merger

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chriserin/gherkinstub/internal/generator"
)

// Reconcile splits generated into the methods missing from existing and the
// names of those already present. A generated method is present when an
// existing identifier equals its name or its rendered identifier, or equals
// either once the test marker is removed, so Test_foo and TestFoo both count
// for foo. Order of generated is kept. A name repeated within generated is
// added once and skipped afterwards, since the file would not compile with
// both.
func Reconcile(existing []string, generated []generator.GeneratedMethod) (add []generator.GeneratedMethod, skipped []string) {
	present := make(map[string]bool, len(existing)*2)
	for _, name := range existing {
		present[name] = true
		if bare, ok := unmarked(name); ok {
			present[bare] = true
		}
	}

	for _, m := range generated {
		if present[m.Name] || present[Identifier(m)] {
			skipped = append(skipped, m.Name)
			continue
		}
		add = append(add, m)
		present[m.Name] = true
		present[Identifier(m)] = true
	}
	return add, skipped
}

func unmarked(name string) (string, bool) {
	if rest, ok := strings.CutPrefix(name, TestPrefix); ok && rest != "" {
		return rest, true
	}
	rest, ok := strings.CutPrefix(name, "Test")
	if !ok || rest == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + rest[size:], true
}
