package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gherkinstub/internal/naming"
	"github.com/chriserin/gherkinstub/internal/parser"
)

const pantsFeature = `Feature: Putting on pants
  A human puts on pants to wear.
  Description can also have two lines.

  Scenario: Human puts on pants leg by leg
    Given a human with normal pants
    When the human puts the first leg in the pants
    And he puts the second leg in the pants
    Then the pants are successfully worn
`

func generate(t *testing.T, text string, c naming.Convention) *GeneratedClass {
	t.Helper()
	f, err := parser.Parse(text)
	require.NoError(t, err)
	class, err := Generate(f, "lizzy.generator", c)
	require.NoError(t, err)
	return class
}

func TestGenerate_ClassAttributes(t *testing.T) {
	class := generate(t, pantsFeature, naming.SnakeCase)

	assert.Equal(t, "PuttingOnPantsTest", class.Name)
	assert.Equal(t, "lizzy.generator", class.PackageName)
	assert.Equal(t, "A human puts on pants to wear.\nDescription can also have two lines.", class.Doc)
}

func TestGenerate_MethodFromScenario(t *testing.T) {
	class := generate(t, pantsFeature, naming.SnakeCase)

	require.Len(t, class.Methods, 1)
	m := class.Methods[0]
	assert.Equal(t, "human_puts_on_pants_leg_by_leg", m.Name)
	assert.True(t, m.TestMarked)
	assert.Equal(t, "Given a human with normal pants\n"+
		"When the human puts the first leg in the pants\n"+
		"And he puts the second leg in the pants\n"+
		"Then the pants are successfully worn\n", m.Doc)
}

func TestGenerate_CamelCaseMethod(t *testing.T) {
	class := generate(t, "Feature: F\nScenario: This is camel case\n", naming.CamelCase)

	require.Len(t, class.Methods, 1)
	assert.Equal(t, "thisIsCamelCase", class.Methods[0].Name)
}

func TestGenerate_SnakeCaseMethod(t *testing.T) {
	class := generate(t, "Feature: F\nScenario: This is snake case\n", naming.SnakeCase)

	require.Len(t, class.Methods, 1)
	assert.Equal(t, "this_is_snake_case", class.Methods[0].Name)
}

func TestGenerate_WithoutCommentary(t *testing.T) {
	class := generate(t, "Feature: Feature\nScenario: Should be a method\n", naming.SnakeCase)

	assert.Equal(t, "FeatureTest", class.Name)
	assert.Empty(t, class.Doc)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "should_be_a_method", class.Methods[0].Name)
	assert.Empty(t, class.Methods[0].Doc)
}

func TestGenerate_ScenarioOrderKept(t *testing.T) {
	class := generate(t, `Feature: Login
Scenario: Second thing
Scenario: First thing
Scenario: Third thing
`, naming.SnakeCase)

	require.Len(t, class.Methods, 3)
	assert.Equal(t, "second_thing", class.Methods[0].Name)
	assert.Equal(t, "first_thing", class.Methods[1].Name)
	assert.Equal(t, "third_thing", class.Methods[2].Name)
}

func TestGenerate_ClassSuffixNotDoubled(t *testing.T) {
	class := generate(t, "Feature: Login Test\nScenario: A\n", naming.SnakeCase)
	assert.Equal(t, "LoginTest", class.Name)
}

func TestGenerate_NoScenarios(t *testing.T) {
	class := generate(t, "Feature: Login\n", naming.SnakeCase)
	assert.Empty(t, class.Methods)
}

func TestGenerate_DuplicateNamesKept(t *testing.T) {
	class := generate(t, `Feature: Login
Scenario: User logs in
Scenario: User logs in!
`, naming.SnakeCase)

	require.Len(t, class.Methods, 2)
	assert.Equal(t, class.Methods[0].Name, class.Methods[1].Name)
	assert.Equal(t, []string{"user_logs_in"}, Duplicates(class))
}

func TestGenerate_InvalidScenarioName(t *testing.T) {
	f := &parser.Feature{Name: "Login", Scenarios: []parser.Scenario{{Name: "???", Line: 7}}}

	_, err := Generate(f, "a", naming.SnakeCase)
	var nameErr *naming.InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Contains(t, err.Error(), "line 7")
}

func TestGenerate_InvalidFeatureName(t *testing.T) {
	f := &parser.Feature{Name: "!!!"}

	_, err := Generate(f, "a", naming.SnakeCase)
	var nameErr *naming.InvalidNameError
	require.ErrorAs(t, err, &nameErr)
}

func TestDuplicates_None(t *testing.T) {
	class := &GeneratedClass{Methods: []GeneratedMethod{{Name: "a"}, {Name: "b"}}}
	assert.Empty(t, Duplicates(class))
}

func TestCollisionError_Error(t *testing.T) {
	err := &CollisionError{Class: "LoginTest", Names: []string{"a", "b"}}
	assert.Equal(t, "class LoginTest: scenarios produce duplicate method names: a, b", err.Error())
}
